package classify

import (
	"strconv"
	"strings"

	"codeberg.org/mutker/hwprint/internal/signal"
)

// 64-bit markers in the user agent. WOW64 is a 32-bit browser on a 64-bit
// Windows; the OS architecture is what is reported.
var x8664Markers = []string{"WOW64", "x64", "x86_64"}

var cpuClassArch = map[string]string{
	"68K":     ArchMotorola68K,
	"PPC":     ArchMotorolaPPC,
	"Digital": ArchAlpha,
}

// ClassifyCPU resolves the architecture from the user agent, the platform
// and the legacy CPU class token, in that order.
func ClassifyCPU(raw signal.RawSignals) CPU {
	return CPU{
		Arch:  cpuArch(raw),
		Cores: raw.CoreCount,
	}
}

func cpuArch(raw signal.RawSignals) string {
	for _, marker := range x8664Markers {
		if strings.Contains(raw.UserAgent, marker) {
			return ArchX8664
		}
	}
	if strings.ToLower(raw.Platform) == "win64" {
		return ArchX8664
	}

	class, ok := raw.CPUClass.Get()
	if !ok {
		return ArchUnknown
	}
	if arch, ok := cpuClassArch[class]; ok {
		return arch
	}

	return ArchX86
}

func ClassifyGPU(raw signal.RawSignals) GPU {
	return GPU{
		Renderer: raw.WebGLRenderer,
		Vendor:   raw.WebGLVendor,
	}
}

// ClassifyMemory passes the approximate device memory through unchanged.
func ClassifyMemory(raw signal.RawSignals) signal.Value[float64] {
	return raw.DeviceMemoryGiB
}

func ClassifyBattery(raw signal.RawSignals) Battery {
	b, ok := raw.Battery.Get()
	if !ok {
		return Battery{
			ChargingStatus:  signal.Missing[bool](),
			LevelPercent:    signal.Missing[string](),
			ChargingTime:    signal.Missing[float64](),
			DischargingTime: signal.Missing[float64](),
		}
	}

	level := signal.Missing[string]()
	if l, ok := b.Level.Get(); ok {
		level = signal.Known(LevelPercent(l))
	}

	return Battery{
		ChargingStatus:  signal.Known(b.Charging),
		LevelPercent:    level,
		ChargingTime:    b.ChargingTime,
		DischargingTime: b.DischargingTime,
	}
}

// LevelPercent formats a [0,1] battery level as a percentage string using
// the shortest representation of level*100.
func LevelPercent(level float64) string {
	return strconv.FormatFloat(level*100, 'f', -1, 64) + "%"
}

func ClassifyScreen(raw signal.RawSignals) Screen {
	return Screen{
		Width:        raw.Screen.Width,
		Height:       raw.Screen.Height,
		ColorDepth:   raw.Screen.ColorDepth,
		TouchEnabled: raw.TouchCapable,
	}
}
