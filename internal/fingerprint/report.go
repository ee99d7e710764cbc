package fingerprint

import "codeberg.org/mutker/hwprint/internal/signal"

// Report is the assembled host fingerprint. Field names are part of the
// wire format consumed by existing operator tooling and must not change.
type Report struct {
	Arch  string            `json:"arch"`
	Cores signal.Value[int] `json:"cores"`

	GPU    signal.Value[string] `json:"gpu"`
	Vendor signal.Value[string] `json:"vendor"`

	Memory signal.Value[float64] `json:"memory"`

	ChargingStatus  signal.Value[bool]    `json:"chargingStatus"`
	BatteryLevel    signal.Value[string]  `json:"batteryLevel"`
	ChargingTime    signal.Value[float64] `json:"chargingTime"`
	DischargingTime signal.Value[float64] `json:"dischargingTime"`

	Width      int `json:"width"`
	Height     int `json:"height"`
	ColorDepth int `json:"colordepth"`

	IsTouchEnabled   bool `json:"isTouchEnabled"`
	IsVirtualMachine bool `json:"isVirtualMachine"`
	IsLaptop         bool `json:"isLaptop"`
	IsMobileDevice   bool `json:"isMobileDevice"`
	IsGameConsole    bool `json:"isGameConsole"`

	Name string `json:"name"`
}
