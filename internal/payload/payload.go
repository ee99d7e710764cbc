// Package payload decodes the signal document posted by the hook script
// into a host.Host. Null or missing members are unavailable capabilities.
package payload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/host"
	"codeberg.org/mutker/hwprint/internal/signal"
)

// Document is one hooked browser's raw capability reads.
type Document struct {
	Session             string                        `json:"session,omitempty"`
	UserAgent           *string                       `json:"userAgent"`
	Platform            *string                       `json:"platform"`
	CPUClass            *string                       `json:"cpuClass"`
	HardwareConcurrency *int                          `json:"hardwareConcurrency"`
	DeviceMemory        *float64                      `json:"deviceMemory"`
	WebGL               *WebGL                        `json:"webgl"`
	Battery             map[host.BatterySource]*Level `json:"battery"`
	Screen              *Screen                       `json:"screen"`
	TouchStart          *bool                         `json:"touchStart"`
}

// WebGL describes the context the hook obtained. A nil Renderer and Vendor
// means the debug renderer extension was unavailable.
type WebGL struct {
	Context  string  `json:"context"`
	Renderer *string `json:"renderer"`
	Vendor   *string `json:"vendor"`
}

type Level struct {
	Charging        bool                  `json:"charging"`
	Level           signal.Value[float64] `json:"level"`
	ChargingTime    signal.Value[float64] `json:"chargingTime"`
	DischargingTime signal.Value[float64] `json:"dischargingTime"`
}

type Screen struct {
	Width      int `json:"width"`
	Height     int `json:"height"`
	ColorDepth int `json:"colorDepth"`
}

// Decode reads a single document or an array of documents.
func Decode(r io.Reader) ([]*Document, error) {
	errFactory := errors.New()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrDecodePayload, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errFactory.WithMessage(errors.ErrDecodePayload, "empty payload")
	}

	if data[0] == '[' {
		var docs []*Document
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, errFactory.Wrap(errors.ErrDecodePayload, err)
		}
		for i, doc := range docs {
			if doc == nil {
				return nil, errFactory.WithMessage(errors.ErrDecodePayload,
					fmt.Sprintf("null document at index %d", i))
			}
		}
		return docs, nil
	}

	if bytes.Equal(data, []byte("null")) {
		return nil, errFactory.WithMessage(errors.ErrDecodePayload, "null document")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errFactory.Wrap(errors.ErrDecodePayload, err)
	}

	return []*Document{&doc}, nil
}

// Host exposes the document through the host capability interface.
func (d *Document) Host() host.Host {
	return documentHost{d}
}

type documentHost struct {
	doc *Document
}

func value[T any](p *T) (T, error) {
	if p == nil {
		var zero T
		return zero, host.ErrUnavailable
	}

	return *p, nil
}

func (h documentHost) UserAgent() (string, error) { return value(h.doc.UserAgent) }
func (h documentHost) Platform() (string, error) { return value(h.doc.Platform) }
func (h documentHost) CPUClass() (string, error) { return value(h.doc.CPUClass) }
func (h documentHost) HardwareConcurrency() (int, error) { return value(h.doc.HardwareConcurrency) }
func (h documentHost) DeviceMemory() (float64, error) { return value(h.doc.DeviceMemory) }
func (h documentHost) HasTouchStart() (bool, error) { return value(h.doc.TouchStart) }

func (h documentHost) Screen() (signal.Screen, error) {
	s, err := value(h.doc.Screen)
	if err != nil {
		return signal.Screen{}, err
	}

	return signal.Screen{Width: s.Width, Height: s.Height, ColorDepth: s.ColorDepth}, nil
}

func (h documentHost) Battery(ctx context.Context, source host.BatterySource) (signal.Battery, error) {
	if err := ctx.Err(); err != nil {
		return signal.Battery{}, err
	}

	l, ok := h.doc.Battery[source]
	if !ok || l == nil {
		return signal.Battery{}, host.ErrUnavailable
	}

	return signal.Battery{
		Charging:        l.Charging,
		Level:           l.Level,
		ChargingTime:    l.ChargingTime,
		DischargingTime: l.DischargingTime,
	}, nil
}

func (h documentHost) CreateCanvas() (host.Canvas, error) {
	return canvas{webgl: h.doc.WebGL}, nil
}

// Enum values are synthetic; they only need to round-trip through
// GetParameter.
const (
	enumVendor uint32 = iota + 1
	enumRenderer
)

type canvas struct {
	webgl *WebGL
}

func (c canvas) GetContext(name string) (host.GLContext, error) {
	if c.webgl == nil {
		return nil, host.ErrUnavailable
	}

	// Hooks that do not record the context name obtained the standard one.
	obtained := c.webgl.Context
	if obtained == "" {
		obtained = host.ContextWebGL
	}
	if name != obtained {
		return nil, host.ErrUnavailable
	}

	return glContext{c.webgl}, nil
}

type glContext struct {
	webgl *WebGL
}

func (g glContext) GetExtension(name string) (*host.Extension, error) {
	if name != host.ExtDebugRendererInfo || (g.webgl.Renderer == nil && g.webgl.Vendor == nil) {
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
		return value(g.webgl.Vendor)
	case enumRenderer:
		return value(g.webgl.Renderer)
	}

	return "", host.ErrUnavailable
}
