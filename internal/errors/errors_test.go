package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"direct", InvalidTone(0), CodeInvalidTone},
		{"wrapped", fmt.Errorf("classify: %w", EmptyInput("text")), CodeEmptyInput},
		{"plain error", fmt.Errorf("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.True(t, Is(InvalidGroup("9", "0243"), CodeInvalidGroup))
	assert.False(t, Is(nil, CodeInvalidGroup))
	assert.False(t, Is(InvalidTone(10), CodeInvalidGroup))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidTone, http.StatusBadRequest},
		{CodeInvalidGroup, http.StatusBadRequest},
		{CodeMalformedSyllable, http.StatusBadRequest},
		{CodeEmptyInput, http.StatusBadRequest},
		{CodeUnresolvedCharacter, http.StatusUnprocessableEntity},
		{CodeAmbiguousCharacter, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func TestAsHidesUnexpectedErrors(t *testing.T) {
	got := As(fmt.Errorf("sql: connection refused"))
	assert.Equal(t, CodeInternal, got.Code)
	assert.Equal(t, "Internal server error", got.Message)

	orig := AmbiguousCharacter("行", []string{"hang4", "hong4"})
	got = As(fmt.Errorf("resolve: %w", orig))
	assert.Same(t, orig, got)
	assert.Equal(t, []string{"hang4", "hong4"}, got.Details)
}
