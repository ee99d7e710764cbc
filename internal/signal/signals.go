package signal

// Battery is one reading of a battery status source. Times are seconds and
// may be infinite. A source may omit any of its numeric members.
type Battery struct {
	Charging        bool
	Level           Value[float64]
	ChargingTime    Value[float64]
	DischargingTime Value[float64]
}

// Screen is the host screen geometry.
type Screen struct {
	Width      int
	Height     int
	ColorDepth int
}

// RawSignals is the fixed-shape bag of facts read from a host during one
// report assembly. It is never cached: battery and memory change over time.
type RawSignals struct {
	UserAgent       string
	Platform        string
	CPUClass        Value[string]
	CoreCount       Value[int]
	DeviceMemoryGiB Value[float64]
	WebGLRenderer   Value[string]
	WebGLVendor     Value[string]
	Battery         Value[Battery]
	Screen          Screen
	TouchCapable    bool
}
