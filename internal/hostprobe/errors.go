package hostprobe

import (
	"codeberg.org/mutker/hwprint/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	ErrNotInitialized    = errors.ErrorCode("gpu_not_initialized")
	ErrNVMLInitFailed    = errors.ErrorCode("gpu_init_failed")
	ErrNVMLShutdown      = errors.ErrorCode("gpu_shutdown_failed")
	ErrDeviceCountFailed = errors.ErrorCode("gpu_device_count_failed")
	ErrDeviceNotFound    = errors.ErrorCode("gpu_device_not_found")
	ErrDeviceInfoFailed  = errors.ErrorCode("gpu_device_info_failed")
	ErrSystemInfoFailed  = errors.ErrorCode("system_info_failed")
)

// nvmlError represents an NVML-specific error
type nvmlError struct {
	ret nvml.Return
}

func (e nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

func newNVMLError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return &nvmlError{ret: ret}
}

func isNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}
