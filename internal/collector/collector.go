// Package collector reads raw signals from a host. Each read is isolated:
// an error or panic turns that one signal into "unknown" and collection
// continues.
package collector

import (
	"context"
	"fmt"

	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/host"
	"codeberg.org/mutker/hwprint/internal/logger"
	"codeberg.org/mutker/hwprint/internal/signal"
)

// Battery sources in the order they are tried. The first one the host
// exposes is used.
var batterySources = []host.BatterySource{
	host.BatteryGetBattery,
	host.BatteryStandard,
	host.BatteryWebKit,
	host.BatteryMoz,
}

// Drawing contexts in the order they are requested.
var webglContexts = []string{
	host.ContextWebGL,
	host.ContextExperimentalWebGL,
}

type Collector struct {
	host      host.Host
	cfg       Config
	userAgent string
}

// New captures the host's user agent once; it is treated as constant for
// the lifetime of the collector.
func New(h host.Host, cfg Config) (*Collector, error) {
	errFactory := errors.New()

	if h == nil {
		return nil, errFactory.WithMessage(errors.ErrInvalidArgument, "nil host")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	ua := probe("user_agent", h.UserAgent).Or("")

	return &Collector{
		host:      h,
		cfg:       cfg,
		userAgent: ua,
	}, nil
}

func (c *Collector) UserAgent() string {
	return c.userAgent
}

// Collect reads a fresh set of signals from the host.
func (c *Collector) Collect(ctx context.Context) signal.RawSignals {
	renderer, vendor := c.webgl()

	return signal.RawSignals{
		UserAgent:       c.userAgent,
		Platform:        probe("platform", c.host.Platform).Or(""),
		CPUClass:        probe("cpu_class", c.host.CPUClass),
		CoreCount:       probe("hardware_concurrency", c.host.HardwareConcurrency),
		DeviceMemoryGiB: probe("device_memory", c.host.DeviceMemory),
		WebGLRenderer:   renderer,
		WebGLVendor:     vendor,
		Battery:         c.battery(ctx),
		Screen:          probe("screen", c.host.Screen).Or(signal.Screen{}),
		TouchCapable:    probe("touch_start", c.host.HasTouchStart).Or(false),
	}
}

// webgl reads the unmasked renderer and vendor through the debug renderer
// extension of a fresh context.
func (c *Collector) webgl() (renderer, vendor signal.Value[string]) {
	ext := probe("webgl_debug_renderer_info", func() (webglInfo, error) {
		canvas, err := c.host.CreateCanvas()
		if err != nil {
			return webglInfo{}, fmt.Errorf("create canvas: %w", err)
		}

		gl, err := openContext(canvas)
		if err != nil {
			return webglInfo{}, err
		}

		info, err := gl.GetExtension(host.ExtDebugRendererInfo)
		if err != nil {
			return webglInfo{}, fmt.Errorf("get extension: %w", err)
		}
		if info == nil {
			return webglInfo{}, host.ErrUnavailable
		}

		return webglInfo{gl: gl, ext: info}, nil
	})

	info, ok := ext.Get()
	if !ok {
		return signal.Missing[string](), signal.Missing[string]()
	}

	renderer = probe("webgl_renderer", func() (string, error) {
		return info.parameter(host.UnmaskedRendererWebGL)
	})
	vendor = probe("webgl_vendor", func() (string, error) {
		return info.parameter(host.UnmaskedVendorWebGL)
	})

	logger.Debug().
		Str("gpu", renderer.String()).
		Str("vendor", vendor.String()).
		Msg("WebGL renderer detected")

	return renderer, vendor
}

type webglInfo struct {
	gl  host.GLContext
	ext *host.Extension
}

func (w webglInfo) parameter(name string) (string, error) {
	pname, ok := w.ext.Constant(name)
	if !ok {
		return "", host.ErrUnavailable
	}

	return w.gl.GetParameter(pname)
}

func openContext(canvas host.Canvas) (host.GLContext, error) {
	var lastErr error = host.ErrUnavailable

	for _, name := range webglContexts {
		gl, err := canvas.GetContext(name)
		if err == nil && gl != nil {
			return gl, nil
		}
		if err != nil {
			lastErr = fmt.Errorf("get context %q: %w", name, err)
		}
	}

	return nil, lastErr
}

// battery uses the first source the host exposes. Each source gets its own
// bounded wait; a source that exists but does not answer in time leaves the
// battery unknown.
func (c *Collector) battery(ctx context.Context) signal.Value[signal.Battery] {
	for _, source := range batterySources {
		b, err := c.readBattery(ctx, source)
		if errors.Is(err, host.ErrUnavailable) {
			continue
		}
		if err != nil {
			logger.Debug().
				Str("signal", "battery").
				Str("source", string(source)).
				Err(err).
				Msg("Battery source failed, using unknown")
			return signal.Missing[signal.Battery]()
		}

		logger.Debug().Str("source", string(source)).Msg("Battery source selected")
		return signal.Known(b)
	}

	logger.Debug().Str("signal", "battery").Msg("No battery source available")

	return signal.Missing[signal.Battery]()
}

// readBattery bounds the wait even for a host that ignores ctx; the read is
// left to finish in the background.
func (c *Collector) readBattery(ctx context.Context, source host.BatterySource) (signal.Battery, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.BatteryTimeout)
	defer cancel()

	type result struct {
		battery signal.Battery
		err     error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("battery source %s panicked: %v", source, r)}
			}
		}()

		b, err := c.host.Battery(ctx, source)
		done <- result{battery: b, err: err}
	}()

	select {
	case r := <-done:
		return r.battery, r.err
	case <-ctx.Done():
		return signal.Battery{}, ctx.Err()
	}
}

// probe runs one host read and converts any failure into an unknown value.
func probe[T any](name string, read func() (T, error)) (out signal.Value[T]) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug().
				Str("signal", name).
				Interface("panic", r).
				Msg("Signal read panicked, using unknown")
			out = signal.Missing[T]()
		}
	}()

	v, err := read()
	if err != nil {
		logger.Debug().
			Str("signal", name).
			Err(err).
			Msg("Signal unavailable, using unknown")
		return signal.Missing[T]()
	}

	return signal.Known(v)
}
