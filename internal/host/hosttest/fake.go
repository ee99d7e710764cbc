// Package hosttest provides a scriptable host.Host for tests.
package hosttest

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/hwprint/internal/host"
	"codeberg.org/mutker/hwprint/internal/signal"
)

// WebGL enum values of the debug renderer extension.
const (
	EnumUnmaskedVendor   uint32 = 0x9245
	EnumUnmaskedRenderer uint32 = 0x9246
)

// Host is a fake host. Nil pointer fields are unavailable capabilities.
// Panics lists method names that panic instead of returning.
type Host struct {
	UA          string
	Plat        string
	CPUClassTok *string
	Cores       *int
	MemoryGiB   *float64
	Contexts    map[string]*GL
	CanvasErr   error
	Batteries   map[host.BatterySource]signal.Battery

	// BatteryDelay blocks asynchronous sources until ctx ends.
	BatteryDelay map[host.BatterySource]bool
	// BatteryStall blocks a source for a fixed time regardless of ctx.
	BatteryStall map[host.BatterySource]time.Duration
	ScreenInfo   signal.Screen
	Touch        bool
	Panics       map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

// Calls returns how many times the named method was invoked.
func (h *Host) Calls(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[name]
}

// GL is a fake WebGL context.
type GL struct {
	Renderer     string
	Vendor       string
	NoDebugInfo  bool
	ParameterErr error
}

func (h *Host) enter(name string) {
	h.mu.Lock()
	if h.calls == nil {
		h.calls = make(map[string]int)
	}
	h.calls[name]++
	h.mu.Unlock()

	if h.Panics[name] {
		panic("hosttest: " + name)
	}
}

func (h *Host) UserAgent() (string, error) {
	h.enter("UserAgent")
	return h.UA, nil
}

func (h *Host) Platform() (string, error) {
	h.enter("Platform")
	return h.Plat, nil
}

func (h *Host) CPUClass() (string, error) {
	h.enter("CPUClass")
	if h.CPUClassTok == nil {
		return "", host.ErrUnavailable
	}
	return *h.CPUClassTok, nil
}

func (h *Host) HardwareConcurrency() (int, error) {
	h.enter("HardwareConcurrency")
	if h.Cores == nil {
		return 0, host.ErrUnavailable
	}
	return *h.Cores, nil
}

func (h *Host) DeviceMemory() (float64, error) {
	h.enter("DeviceMemory")
	if h.MemoryGiB == nil {
		return 0, host.ErrUnavailable
	}
	return *h.MemoryGiB, nil
}

func (h *Host) CreateCanvas() (host.Canvas, error) {
	h.enter("CreateCanvas")
	if h.CanvasErr != nil {
		return nil, h.CanvasErr
	}
	return canvas{contexts: h.Contexts}, nil
}

func (h *Host) Battery(ctx context.Context, source host.BatterySource) (signal.Battery, error) {
	h.enter("Battery")
	b, ok := h.Batteries[source]
	if !ok {
		return signal.Battery{}, host.ErrUnavailable
	}
	if h.BatteryDelay[source] {
		<-ctx.Done()
		return signal.Battery{}, ctx.Err()
	}
	if d := h.BatteryStall[source]; d > 0 {
		time.Sleep(d)
	}
	return b, nil
}

func (h *Host) Screen() (signal.Screen, error) {
	h.enter("Screen")
	return h.ScreenInfo, nil
}

func (h *Host) HasTouchStart() (bool, error) {
	h.enter("HasTouchStart")
	return h.Touch, nil
}

type canvas struct {
	contexts map[string]*GL
}

func (c canvas) GetContext(name string) (host.GLContext, error) {
	gl, ok := c.contexts[name]
	if !ok {
		return nil, host.ErrUnavailable
	}
	return gl, nil
}

func (g *GL) GetExtension(name string) (*host.Extension, error) {
	if name != host.ExtDebugRendererInfo || g.NoDebugInfo {
		return nil, host.ErrUnavailable
	}
	return &host.Extension{
		Name: name,
		Constants: map[string]uint32{
			host.UnmaskedVendorWebGL:   EnumUnmaskedVendor,
			host.UnmaskedRendererWebGL: EnumUnmaskedRenderer,
		},
	}, nil
}

func (g *GL) GetParameter(pname uint32) (string, error) {
	if g.ParameterErr != nil {
		return "", g.ParameterErr
	}
	switch pname {
	case EnumUnmaskedVendor:
		return g.Vendor, nil
	case EnumUnmaskedRenderer:
		return g.Renderer, nil
	}
	return "", host.ErrUnavailable
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
