package identity

import "strings"

// Vendor markers matched case-sensitively against the raw user agent.
var nokiaMarkers = []string{"Maemo Browser", "Symbian", "Nokia", "Lumia "}

func isHTC(ua string) bool { return strings.Contains(ua, "HTC") }
func isMotorola(ua string) bool { return strings.Contains(ua, "Motorola") }
func isZune(ua string) bool { return strings.Contains(ua, "ZuneWP7") }
func isGoogle(ua string) bool { return strings.Contains(ua, "Nexus One") }
func isEricsson(ua string) bool { return strings.Contains(ua, "Ericsson") }

func isNokia(ua string) bool {
	for _, marker := range nokiaMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}

	return false
}
