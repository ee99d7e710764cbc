package hostprobe

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	gohost "github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

type gopsutilSystem struct{}

func (gopsutilSystem) Info(ctx context.Context) (*gohost.InfoStat, error) {
	return gohost.InfoWithContext(ctx)
}

func (gopsutilSystem) LogicalCores(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

func (gopsutilSystem) TotalMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}

	return vm.Total, nil
}
