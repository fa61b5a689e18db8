package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			require.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))
	assert.NoError(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(ErrNotFound, "mirror %d", 3)
	assert.Equal(t, "mirror 3: not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("size", 51, "must be between 1 and 50")

	assert.Equal(t, "validation failed for field 'size': must be between 1 and 50 (value: 51)", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, WrapError(err, "prompt"), ErrInvalidInput)
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("no such host")
	err := NewNetworkError("https://cdn.example.com/25MB.bin", "request failed", cause)

	assert.Equal(t, "network error for 'https://cdn.example.com/25MB.bin': request failed: no such host", err.Error())
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, WrapError(err, "fetch"), cause)

	bare := NewNetworkError("https://cdn.example.com", "timeout", nil)
	assert.Equal(t, "network error for 'https://cdn.example.com': timeout", bare.Error())
}

func TestHTTPError(t *testing.T) {
	err := NewHTTPErrorWithURL(http.StatusNotFound, "404 Not Found", "https://cdn.example.com/a.bin")
	assert.Equal(t, "HTTP 404 error for 'https://cdn.example.com/a.bin': 404 Not Found", err.Error())

	var httpErr *HTTPError
	require.True(t, errors.As(WrapError(err, "fetch"), &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)

	noURL := &HTTPError{StatusCode: 500, Message: "boom"}
	assert.Equal(t, "HTTP 500 error: boom", noURL.Error())
}

func TestErrorCollector(t *testing.T) {
	var ec ErrorCollector
	assert.False(t, ec.HasErrors())
	assert.NoError(t, ec.Error())

	ec.Add(nil)
	ec.Add(errors.New("first"))
	assert.Equal(t, "first", ec.Error().Error())

	ec.AddWithContext(errors.New("second"), "cleanup")
	assert.True(t, ec.HasErrors())
	assert.Equal(t, "multiple errors occurred: [first; cleanup: second]", ec.Error().Error())
}
