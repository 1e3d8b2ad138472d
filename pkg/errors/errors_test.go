package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap("kb_source_error", "read knowledge base", cause)
	require.EqualError(t, err, "read knowledge base: boom")
	require.ErrorIs(t, err, cause)
	require.True(t, IsCode(err, "kb_source_error"))
	require.False(t, IsCode(err, "faq_error"))

	bare := Wrap("invalid_knowledge_base", "missing fallback", nil)
	require.EqualError(t, bare, "missing fallback")
	require.Nil(t, errors.Unwrap(bare))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := Wrap("invalid_knowledge_base", "duplicate id", nil)
	outer := fmt.Errorf("load: %w", inner)
	require.True(t, IsCode(outer, "invalid_knowledge_base"))
	require.False(t, IsCode(errors.New("plain"), "invalid_knowledge_base"))
	require.False(t, IsCode(nil, "invalid_knowledge_base"))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "nil", err: nil, code: ""},
		{name: "plain", err: errors.New("plain"), code: ""},
		{name: "direct", err: Wrap("faq_error", "trending", nil), code: "faq_error"},
		{name: "wrapped", err: fmt.Errorf("startup: %w", Wrap("kb_source_error", "open", errors.New("enoent"))), code: "kb_source_error"},
		{name: "outermost wins", err: Wrap("kb_source_error", "load", Wrap("invalid_knowledge_base", "dup", nil)), code: "kb_source_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.code, CodeOf(tc.err))
			appErr, ok := As(tc.err)
			require.Equal(t, tc.code != "", ok)
			if ok {
				require.Equal(t, tc.code, appErr.Code)
			}
		})
	}
}
