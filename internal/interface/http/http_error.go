package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/kbsource"
	apperrors "github.com/yanqian/ccs-faqbot/pkg/errors"
)

// HTTPError is the transport form of a failure: status, code and the message
// written to the {"error":{"code","message"}} envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError builds an HTTPError for failures raised by the transport itself.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// statusByCode maps domain error codes onto HTTP statuses. Unlisted codes are 500s.
var statusByCode = map[string]int{
	faq.CodeStoreUnavailable:     http.StatusServiceUnavailable,
	kbsource.CodeSourceError:     http.StatusServiceUnavailable,
	faq.CodeInvalidKnowledgeBase: http.StatusInternalServerError,
}

// asHTTPError keeps an HTTPError as is, translates an AppError by its code and
// hides anything else behind a generic internal_error.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if appErr, ok := apperrors.As(err); ok {
		status, known := statusByCode[appErr.Code]
		if !known {
			status = http.StatusInternalServerError
		}
		return &HTTPError{Status: status, Code: appErr.Code, Message: appErr.Message, Err: err}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(asHTTPError(err))
	c.Abort()
}
