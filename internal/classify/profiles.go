// Package classify turns raw signals into typed profiles and derives the
// virtual machine and laptop facts. Every function here is pure.
package classify

import "codeberg.org/mutker/hwprint/internal/signal"

// Architecture labels.
const (
	ArchX8664       = "x86_64"
	ArchX86         = "x86"
	ArchMotorola68K = "Motorola 68K"
	ArchMotorolaPPC = "Motorola PPC"
	ArchAlpha       = "Alpha"
	ArchUnknown     = "UNKNOWN"
)

type CPU struct {
	Arch  string
	Cores signal.Value[int]
}

type GPU struct {
	Renderer signal.Value[string]
	Vendor   signal.Value[string]
}

type Battery struct {
	ChargingStatus  signal.Value[bool]
	LevelPercent    signal.Value[string]
	ChargingTime    signal.Value[float64]
	DischargingTime signal.Value[float64]
}

type Screen struct {
	Width        int
	Height       int
	ColorDepth   int
	TouchEnabled bool
}
