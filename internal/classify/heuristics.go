package classify

import "strings"

const vmwareVendor = "VMware, Inc"

type resolution struct {
	width, height int
}

// Common laptop and netbook panels. Matching is exact.
var laptopResolutions = []resolution{
	{1366, 768},
	{1024, 600},
}

// IsVirtualMachine reports whether the host looks virtualized. A VMware GPU
// vendor wins outright; mobile devices are never flagged; otherwise an odd
// screen dimension is taken as a hypervisor artifact.
func IsVirtualMachine(gpu GPU, screen Screen, mobile bool) bool {
	if strings.Contains(gpu.Vendor.Or(""), vmwareVendor) {
		return true
	}

	if mobile {
		return false
	}

	return screen.Width%2 != 0 || screen.Height%2 != 0
}

// IsLaptop reports whether a non-mobile host has a known laptop resolution.
func IsLaptop(screen Screen, mobile bool) bool {
	if mobile {
		return false
	}

	for _, r := range laptopResolutions {
		if screen.Width == r.width && screen.Height == r.height {
			return true
		}
	}

	return false
}
