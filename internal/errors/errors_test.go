package errors_test

import (
	"fmt"
	"testing"

	"codeberg.org/mutker/hwprint/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	f := errors.New()

	assert.Equal(t, "Failed to assemble report", f.New(errors.ErrAssemble).Error())
	assert.Equal(t, "custom", f.WithMessage(errors.ErrAssemble, "custom").Error())
	assert.Equal(t, "unmapped_code", f.New(errors.ErrorCode("unmapped_code")).Error())

	wrapped := f.Wrap(errors.ErrSaveReport, fmt.Errorf("disk full"))
	assert.Equal(t, "Failed to save report: disk full", wrapped.Error())

	withData := f.WithData(errors.ErrInvalidConfig, "log_level")
	assert.Equal(t, "Invalid configuration: log_level", withData.Error())
	assert.Equal(t, "log_level", withData.GetData())
}

func TestHasCode(t *testing.T) {
	f := errors.New()
	inner := f.New(errors.ErrInvalidLogLevel)
	outer := f.Wrap(errors.ErrInvalidConfig, fmt.Errorf("validate: %w", inner))

	assert.True(t, errors.HasCode(outer, errors.ErrInvalidConfig))
	assert.True(t, errors.HasCode(outer, errors.ErrInvalidLogLevel))
	assert.False(t, errors.HasCode(outer, errors.ErrTimeout))
	assert.False(t, errors.HasCode(nil, errors.ErrTimeout))
}
