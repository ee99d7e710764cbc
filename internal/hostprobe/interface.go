package hostprobe

import (
	"context"

	gohost "github.com/shirou/gopsutil/v4/host"
)

// system reads operating system facts.
type system interface {
	Info(ctx context.Context) (*gohost.InfoStat, error)
	LogicalCores(ctx context.Context) (int, error)
	TotalMemory(ctx context.Context) (uint64, error)
}

// nvmlController abstracts NVML operations for testing
type nvmlController interface {
	Initialize() error
	Shutdown() error
	GetDeviceCount() (int, error)
	GetDeviceName(index int) (string, error)
}
