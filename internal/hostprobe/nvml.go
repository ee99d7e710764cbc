package hostprobe

import (
	"codeberg.org/mutker/hwprint/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlWrapper struct {
	initialized bool
}

func (w *nvmlWrapper) Initialize() error {
	errFactory := errors.New()
	if w.initialized {
		return nil
	}

	ret := nvml.Init()
	if !isNVMLSuccess(ret) {
		return errFactory.Wrap(ErrNVMLInitFailed, newNVMLError(ret))
	}

	w.initialized = true

	return nil
}

func (w *nvmlWrapper) Shutdown() error {
	errFactory := errors.New()
	if !w.initialized {
		return nil
	}

	ret := nvml.Shutdown()
	if !isNVMLSuccess(ret) {
		return errFactory.Wrap(ErrNVMLShutdown, newNVMLError(ret))
	}

	w.initialized = false

	return nil
}

func (w *nvmlWrapper) GetDeviceCount() (int, error) {
	errFactory := errors.New()
	if !w.initialized {
		return 0, errFactory.New(ErrNotInitialized)
	}

	count, ret := nvml.DeviceGetCount()
	if !isNVMLSuccess(ret) {
		return 0, errFactory.Wrap(ErrDeviceCountFailed, newNVMLError(ret))
	}

	return count, nil
}

func (w *nvmlWrapper) GetDeviceName(index int) (string, error) {
	errFactory := errors.New()
	if !w.initialized {
		return "", errFactory.New(ErrNotInitialized)
	}

	device, ret := nvml.DeviceGetHandleByIndex(index)
	if !isNVMLSuccess(ret) {
		return "", errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret))
	}

	name, ret := device.GetName()
	if !isNVMLSuccess(ret) {
		return "", errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret))
	}

	return name, nil
}
