package payload_test

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/hwprint/internal/collector"
	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/fingerprint"
	"codeberg.org/mutker/hwprint/internal/host"
	"codeberg.org/mutker/hwprint/internal/payload"
	"codeberg.org/mutker/hwprint/internal/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFile(t *testing.T, name string) []*payload.Document {
	t.Helper()

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()

	docs, err := payload.Decode(f)
	require.NoError(t, err)

	return docs
}

func assemble(t *testing.T, doc *payload.Document) *fingerprint.Report {
	t.Helper()

	lib, err := signature.Default()
	require.NoError(t, err)
	svc, err := fingerprint.New(doc.Host(), lib, collector.Config{BatteryTimeout: 50 * time.Millisecond})
	require.NoError(t, err)
	r, err := svc.Assemble(context.Background())
	require.NoError(t, err)

	return r
}

func TestDecodeSingle(t *testing.T) {
	docs := decodeFile(t, "testdata/iphone.json")
	require.Len(t, docs, 1)
	assert.Equal(t, "hook-7f3a", docs[0].Session)

	r := assemble(t, docs[0])
	assert.Equal(t, "iPhone", r.Name)
	assert.Equal(t, "UNKNOWN", r.Arch)
	assert.Equal(t, 6, r.Cores.Or(0))
	assert.Equal(t, "Apple GPU", r.GPU.Or(""))
	assert.Equal(t, "Apple Inc.", r.Vendor.Or(""))
	assert.False(t, r.Memory.IsKnown())
	assert.False(t, r.BatteryLevel.IsKnown())
	assert.True(t, r.IsMobileDevice)
	assert.True(t, r.IsTouchEnabled)
	assert.Equal(t, 393, r.Width)
}

func TestDecodeBatch(t *testing.T) {
	docs := decodeFile(t, "testdata/batch.json")
	require.Len(t, docs, 2)

	vm := assemble(t, docs[0])
	assert.Equal(t, "Virtual Machine", vm.Name)
	assert.Equal(t, "x86_64", vm.Arch)
	assert.Equal(t, "SVGA3D; build: RELEASE; LLVM;", vm.GPU.Or(""))
	assert.Equal(t, "100%", vm.BatteryLevel.Or(""))
	discharging, ok := vm.DischargingTime.Get()
	require.True(t, ok)
	assert.True(t, math.IsInf(discharging, 1))

	console := assemble(t, docs[1])
	assert.Equal(t, "Playstation", console.Name)
	assert.True(t, console.IsGameConsole)
	assert.False(t, console.GPU.IsKnown())
	assert.Equal(t, 0, console.Width)
}

func TestBatteryMissingMembers(t *testing.T) {
	docs, err := payload.Decode(strings.NewReader(
		`{"userAgent": "x", "battery": {"getBattery": {"charging": true, "level": 0.8, "chargingTime": null}}}`))
	require.NoError(t, err)

	r := assemble(t, docs[0])
	assert.Equal(t, "true", r.ChargingStatus.String())
	assert.Equal(t, "80%", r.BatteryLevel.Or(""))
	assert.False(t, r.ChargingTime.IsKnown())
	assert.False(t, r.DischargingTime.IsKnown())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"chargingTime":"unknown"`)
	assert.Contains(t, string(out), `"dischargingTime":"unknown"`)

	docs, err = payload.Decode(strings.NewReader(
		`{"userAgent": "x", "battery": {"mozBattery": {"charging": false, "dischargingTime": 600}}}`))
	require.NoError(t, err)

	r = assemble(t, docs[0])
	assert.False(t, r.BatteryLevel.IsKnown())
	assert.False(t, r.ChargingTime.IsKnown())
	assert.Equal(t, 600.0, r.DischargingTime.Or(0))
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "{", "[{]", "null", "[null, {}]", `[{"userAgent": "x"}, null]`} {
		_, err := payload.Decode(strings.NewReader(input))
		require.Error(t, err, input)
		assert.True(t, errors.HasCode(err, errors.ErrDecodePayload))
	}
}

func TestHostCapabilities(t *testing.T) {
	docs, err := payload.Decode(strings.NewReader(`{"userAgent": "x", "webgl": {"renderer": null, "vendor": null}}`))
	require.NoError(t, err)
	h := docs[0].Host()

	_, err = h.CPUClass()
	assert.ErrorIs(t, err, host.ErrUnavailable)

	canvas, err := h.CreateCanvas()
	require.NoError(t, err)
	_, err = canvas.GetContext(host.ContextExperimentalWebGL)
	assert.ErrorIs(t, err, host.ErrUnavailable)
	gl, err := canvas.GetContext(host.ContextWebGL)
	require.NoError(t, err)
	_, err = gl.GetExtension(host.ExtDebugRendererInfo)
	assert.ErrorIs(t, err, host.ErrUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Battery(ctx, host.BatteryGetBattery)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = h.Battery(context.Background(), host.BatteryGetBattery)
	assert.ErrorIs(t, err, host.ErrUnavailable)
}
