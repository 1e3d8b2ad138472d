package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	kb     *faq.KnowledgeBase
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, kb *faq.KnowledgeBase, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		kb:     kb,
		logger: logger.With("component", "http.handler"),
	}
}

// Chat answers one user message.
func (h *Handler) Chat(c *gin.Context) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Menu returns the help topics.
func (h *Handler) Menu(c *gin.Context) {
	c.JSON(http.StatusOK, h.faqSvc.Menu(c.Request.Context()))
}

// TrendingFAQ returns the most common questions.
func (h *Handler) TrendingFAQ(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if items == nil {
		items = []faq.TrendingQuery{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Stats reports how messages were resolved since startup.
func (h *Handler) Stats(c *gin.Context) {
	snapshot := h.faqSvc.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"total": snapshot.Total(), "stages": snapshot})
}

// Health reports liveness and the loaded knowledge base size.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": h.kb.Len()})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
