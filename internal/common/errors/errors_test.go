package errors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCode(t *testing.T) {
	err := NewJobNotFoundError("job-1")

	assert.True(t, IsCode(err, ErrCodeJobNotFound))
	assert.False(t, IsCode(err, ErrCodeEmptyChart))
	assert.False(t, IsCode(goerrors.New("plain"), ErrCodeJobNotFound))
	assert.False(t, IsCode(nil, ErrCodeJobNotFound))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("processing job: %w", NewEmptyChartError("no sizes"))
	assert.True(t, IsCode(wrapped, ErrCodeEmptyChart))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewExtractionTimeoutError("gemini")))
	assert.True(t, IsRetryable(NewExtractionFailedError(goerrors.New("boom"))))
	assert.False(t, IsRetryable(NewImageUnreadableError("blurry")))
	assert.False(t, IsRetryable(NewDuplicateJobError("job-1")))
	assert.False(t, IsRetryable(goerrors.New("plain")))
}

func TestErrorMessageCarriesCode(t *testing.T) {
	err := NewImageUnreadableError("glare on the chart")
	require.Contains(t, err.Error(), "IMAGE_UNREADABLE")
	assert.Equal(t, "glare on the chart", err.Details)
	assert.False(t, err.Timestamp.IsZero())
}
