// Package host describes the capability surface a browser host exposes to
// the fingerprinting engine. Every method may fail; a missing capability is
// reported as ErrUnavailable.
package host

import (
	"context"
	stderrors "errors"

	"codeberg.org/mutker/hwprint/internal/signal"
)

// ErrUnavailable is returned when the host does not expose a capability.
var ErrUnavailable = stderrors.New("capability unavailable")

// Drawing context names, in the order they are requested.
const (
	ContextWebGL             = "webgl"
	ContextExperimentalWebGL = "experimental-webgl"
)

// Debug renderer extension and its parameter names.
const (
	ExtDebugRendererInfo  = "WEBGL_debug_renderer_info"
	UnmaskedVendorWebGL   = "UNMASKED_VENDOR_WEBGL"
	UnmaskedRendererWebGL = "UNMASKED_RENDERER_WEBGL"
)

// BatterySource names a battery status API.
type BatterySource string

const (
	BatteryGetBattery BatterySource = "getBattery"
	BatteryStandard   BatterySource = "battery"
	BatteryWebKit     BatterySource = "webkitBattery"
	BatteryMoz        BatterySource = "mozBattery"
)

// Host is a running browser session seen through its capability APIs.
type Host interface {
	UserAgent() (string, error)
	Platform() (string, error)
	// CPUClass returns the legacy navigator.cpuClass token.
	CPUClass() (string, error)
	HardwareConcurrency() (int, error)
	DeviceMemory() (float64, error)
	CreateCanvas() (Canvas, error)
	// Battery reads one battery source. Asynchronous sources must honour ctx.
	Battery(ctx context.Context, source BatterySource) (signal.Battery, error)
	Screen() (signal.Screen, error)
	HasTouchStart() (bool, error)
}

// Canvas is an off-screen drawing surface.
type Canvas interface {
	GetContext(name string) (GLContext, error)
}

// Extension is a WebGL extension object with its named enum constants.
type Extension struct {
	Name      string
	Constants map[string]uint32
}

// Constant returns the enum value for name.
func (e *Extension) Constant(name string) (uint32, bool) {
	if e == nil {
		return 0, false
	}
	v, ok := e.Constants[name]

	return v, ok
}

// GLContext is a WebGL rendering context.
type GLContext interface {
	GetExtension(name string) (*Extension, error)
	GetParameter(pname uint32) (string, error)
}
