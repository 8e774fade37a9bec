package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrQuestionNotFound", ErrQuestionNotFound, true},
		{"wrapped ErrQuestionNotFound", fmt.Errorf("answer question 7: %w", ErrQuestionNotFound), true},
		{"store error around ErrQuestionNotFound", NewStoreError("question", "get", "missing", ErrQuestionNotFound), true},
		{"ErrAlreadyAnswered", ErrAlreadyAnswered, false},
		{"ErrNoOpenQuestion", ErrNoOpenQuestion, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk I/O error")

	err := NewStoreError("question", "answer", "failed to update question", cause)
	assert.Equal(t, "answer operation on question failed: failed to update question: disk I/O error", err.Error())
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	wrapped := fmt.Errorf("service: %w", err)
	assert.True(t, errors.As(wrapped, &storeErr))
	assert.Equal(t, "question", storeErr.Entity)

	bare := NewStoreError("question", "count", "invalid range", nil)
	assert.Equal(t, "count operation on question failed: invalid range", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
