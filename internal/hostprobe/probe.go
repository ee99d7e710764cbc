// Package hostprobe fingerprints the local machine. Operating system facts
// come from gopsutil and the GPU name from NVML; capabilities only a
// browser has (screen, touch, battery) are unavailable.
package hostprobe

import (
	"context"
	"fmt"
	"math"
	"strings"

	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/host"
	"codeberg.org/mutker/hwprint/internal/logger"
	"codeberg.org/mutker/hwprint/internal/signal"
	gohost "github.com/shirou/gopsutil/v4/host"
)

// NVMLVendor is reported as the GPU vendor when NVML finds a device.
const NVMLVendor = "NVIDIA Corporation"

// WebGL debug renderer enums.
const (
	enumVendor   uint32 = 0x9245
	enumRenderer uint32 = 0x9246
)

// Probe is the local machine seen as a host. Facts are read once by Open.
type Probe struct {
	gpus nvmlController

	userAgent signal.Value[string]
	platform  signal.Value[string]
	cores     signal.Value[int]
	memoryGiB signal.Value[float64]
	renderer  signal.Value[string]
}

// Open reads the local machine's facts. Individual read failures leave that
// fact unavailable; only a cancelled context fails the probe.
func Open(ctx context.Context) (*Probe, error) {
	return open(ctx, gopsutilSystem{}, &nvmlWrapper{})
}

func open(ctx context.Context, sys system, gpus nvmlController) (*Probe, error) {
	errFactory := errors.New()

	p := &Probe{gpus: gpus}

	if info, err := sys.Info(ctx); err != nil {
		logger.Debug().Err(errFactory.Wrap(ErrSystemInfoFailed, err)).Msg("Host info unavailable")
	} else {
		p.userAgent = signal.Known(userAgent(info))
		p.platform = signal.Known(platform(info))
	}

	if cores, err := sys.LogicalCores(ctx); err != nil || cores <= 0 {
		logger.Debug().Err(err).Msg("Logical core count unavailable")
	} else {
		p.cores = signal.Known(cores)
	}

	if total, err := sys.TotalMemory(ctx); err != nil || total == 0 {
		logger.Debug().Err(err).Msg("Total memory unavailable")
	} else {
		p.memoryGiB = signal.Known(deviceMemory(total))
	}

	if err := ctx.Err(); err != nil {
		return nil, errFactory.Wrap(errors.ErrTimeout, err)
	}

	p.renderer = p.readRenderer()

	return p, nil
}

func (p *Probe) readRenderer() signal.Value[string] {
	if err := p.gpus.Initialize(); err != nil {
		logger.Debug().Err(err).Msg("NVML unavailable")
		return signal.Missing[string]()
	}

	count, err := p.gpus.GetDeviceCount()
	if err != nil || count == 0 {
		logger.Debug().Err(err).Int("count", count).Msg("No NVIDIA device found")
		return signal.Missing[string]()
	}

	name, err := p.gpus.GetDeviceName(0)
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to read device name")
		return signal.Missing[string]()
	}

	logger.Debug().Str("renderer", name).Int("count", count).Msg("NVIDIA device found")

	return signal.Known(name)
}

// Close releases NVML.
func (p *Probe) Close() error {
	return p.gpus.Shutdown()
}

// deviceMemory converts bytes to GiB rounded down to a power of two, the
// way navigator.deviceMemory buckets it.
func deviceMemory(total uint64) float64 {
	gib := float64(total) / (1 << 30)
	return math.Exp2(math.Floor(math.Log2(gib)))
}

func isX8664(arch string) bool {
	switch strings.ToLower(arch) {
	case "x86_64", "amd64":
		return true
	}
	return false
}

func userAgent(info *gohost.InfoStat) string {
	switch info.OS {
	case "windows":
		if isX8664(info.KernelArch) {
			return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) hwprint"
		}
		return "Mozilla/5.0 (Windows NT 10.0) hwprint"
	case "darwin":
		return "Mozilla/5.0 (Macintosh; Intel Mac OS X) hwprint"
	case "linux":
		return fmt.Sprintf("Mozilla/5.0 (X11; Linux %s) hwprint", info.KernelArch)
	}

	return fmt.Sprintf("Mozilla/5.0 (%s; %s) hwprint", info.OS, info.KernelArch)
}

func platform(info *gohost.InfoStat) string {
	switch info.OS {
	case "windows":
		return "Win32"
	case "darwin":
		return "MacIntel"
	case "linux":
		return "Linux " + info.KernelArch
	}

	return info.OS
}

func known[T any](v signal.Value[T]) (T, error) {
	if got, ok := v.Get(); ok {
		return got, nil
	}

	var zero T
	return zero, host.ErrUnavailable
}

func (p *Probe) UserAgent() (string, error) { return known(p.userAgent) }
func (p *Probe) Platform() (string, error) { return known(p.platform) }
func (p *Probe) HardwareConcurrency() (int, error) { return known(p.cores) }
func (p *Probe) DeviceMemory() (float64, error) { return known(p.memoryGiB) }

func (*Probe) CPUClass() (string, error) { return "", host.ErrUnavailable }
func (*Probe) Screen() (signal.Screen, error) { return signal.Screen{}, host.ErrUnavailable }
func (*Probe) HasTouchStart() (bool, error) { return false, host.ErrUnavailable }

func (*Probe) Battery(ctx context.Context, _ host.BatterySource) (signal.Battery, error) {
	if err := ctx.Err(); err != nil {
		return signal.Battery{}, err
	}
	return signal.Battery{}, host.ErrUnavailable
}

func (p *Probe) CreateCanvas() (host.Canvas, error) {
	return canvas{renderer: p.renderer}, nil
}

type canvas struct {
	renderer signal.Value[string]
}

// GetContext only offers the standard context, and only when a GPU was
// found.
func (c canvas) GetContext(name string) (host.GLContext, error) {
	if name != host.ContextWebGL || !c.renderer.IsKnown() {
		return nil, host.ErrUnavailable
	}

	return glContext(c), nil
}

type glContext struct {
	renderer signal.Value[string]
}

func (glContext) GetExtension(name string) (*host.Extension, error) {
	if name != host.ExtDebugRendererInfo {
		return nil, host.ErrUnavailable
	}

	return &host.Extension{
		Name: name,
		Constants: map[string]uint32{
			host.UnmaskedVendorWebGL:   enumVendor,
			host.UnmaskedRendererWebGL: enumRenderer,
		},
	}, nil
}

func (g glContext) GetParameter(pname uint32) (string, error) {
	switch pname {
	case enumVendor:
		return NVMLVendor, nil
	case enumRenderer:
		return known(g.renderer)
	}

	return "", host.ErrUnavailable
}
