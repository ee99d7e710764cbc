// Package identity resolves a single best-guess device name from the user
// agent, the signature library and the physical heuristics.
package identity

import (
	"strings"

	"codeberg.org/mutker/hwprint/internal/classify"
)

// Unknown is the name reported when no rule matches.
const Unknown = "Unknown"

// Subject is everything a rule may look at.
type Subject struct {
	// UserAgent is the raw user agent, used by the vendor substring checks.
	UserAgent string
	// Identity is the normalized string handed to the signature library.
	Identity         string
	IsLaptop         bool
	IsVirtualMachine bool
}

// Rule names a device when its predicate holds.
type Rule struct {
	Name  string
	Match func(s Subject, sigs Signatures) bool
}

func family(name string) func(Subject, Signatures) bool {
	return func(s Subject, sigs Signatures) bool {
		return sigs.Match(name, s.Identity)
	}
}

func rawUA(check func(string) bool) func(Subject, Signatures) bool {
	return func(s Subject, _ Signatures) bool {
		return check(s.UserAgent)
	}
}

// rules is evaluated top to bottom and the first match wins. Specific
// variants precede their general sibling, and vendor checks precede the
// mobile OS families whose signatures overlap them.
var rules = []Rule{
	{"iPhone", family(FamilyIPhone)},
	{"iPod Touch", family(FamilyIPod)},
	{"iPad", family(FamilyIPad)},

	{"HTC", rawUA(isHTC)},
	{"Motorola", rawUA(isMotorola)},
	{"Zune", rawUA(isZune)},
	{"Google Nexus One", rawUA(isGoogle)},
	{"Ericsson", rawUA(isEricsson)},

	{"Android Phone", family(FamilyAndroidPhone)},
	{"Android Tablet", family(FamilyAndroidTablet)},
	{"Nokia S60 Open Source", family(FamilyS60OSSBrowser)},
	{"Nokia S60", family(FamilySeries60)},
	{"Nokia S70", family(FamilySeries70)},
	{"Nokia S80", family(FamilySeries80)},
	{"Nokia S90", family(FamilySeries90)},
	{"Nokia Symbian", family(FamilySymbian)},
	{"Nokia", rawUA(isNokia)},

	{"Windows Phone 7", family(FamilyWindowsPhone7)},
	{"Windows Phone 8", family(FamilyWindowsPhone8)},
	{"Windows Phone 10", family(FamilyWindowsPhone10)},
	{"Windows Mobile", family(FamilyWindowsMobile)},

	{"BlackBerry Tablet", family(FamilyBlackBerryTab)},
	{"BlackBerry OS 6", family(FamilyBlackBerryWK)},
	{"BlackBerry Touch", family(FamilyBlackBerryTouch)},
	{"BlackBerry OS 5", family(FamilyBlackBerryHigh)},
	{"BlackBerry", family(FamilyBlackBerry)},

	{"Palm OS", family(FamilyPalmOS)},
	{"Palm Web OS", family(FamilyPalmWebOS)},
	{"Garmin Nuvifone", family(FamilyGarminNuvifone)},
	{"Archos", family(FamilyArchos)},
	{"Brew", family(FamilyBrew)},
	{"Danger Hiptop", family(FamilyDangerHiptop)},
	{"Maemo Tablet", family(FamilyMaemoTablet)},
	{"Sony Mylo", family(FamilySonyMylo)},

	{"Kindle Fire", family(FamilyAmazonSilk)},
	{"Kindle", family(FamilyKindle)},

	{"Playstation", family(FamilyPlayStation)},
	{"Nintendo DS", family(FamilyNintendoDS)},
	{"Nintendo Wii", family(FamilyNintendoWii)},
	{"Nintendo", family(FamilyNintendo)},
	{"Xbox", family(FamilyXbox)},

	{"Laptop", func(s Subject, _ Signatures) bool { return s.IsLaptop }},
	{"Virtual Machine", func(s Subject, _ Signatures) bool { return s.IsVirtualMachine }},
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)

	return out
}

// Families lists every signature family the resolver depends on.
func Families() []string {
	return []string{
		FamilyIPhone, FamilyIPod, FamilyIPad,
		FamilyAndroidPhone, FamilyAndroidTablet,
		FamilyS60OSSBrowser, FamilySeries60, FamilySeries70, FamilySeries80, FamilySeries90, FamilySymbian,
		FamilyWindowsPhone7, FamilyWindowsPhone8, FamilyWindowsPhone10, FamilyWindowsMobile,
		FamilyBlackBerryTab, FamilyBlackBerryWK, FamilyBlackBerryTouch, FamilyBlackBerryHigh, FamilyBlackBerry,
		FamilyPalmOS, FamilyPalmWebOS, FamilyGarminNuvifone, FamilyArchos, FamilyBrew,
		FamilyDangerHiptop, FamilyMaemoTablet, FamilySonyMylo,
		FamilyAmazonSilk, FamilyKindle,
		FamilyPlayStation, FamilyNintendoDS, FamilyNintendoWii, FamilyNintendo, FamilyXbox,
		FamilyMobileQuick, FamilyGameConsole,
	}
}

type Resolver struct {
	sigs  Signatures
	rules []Rule
}

func NewResolver(sigs Signatures) *Resolver {
	return &Resolver{
		sigs:  sigs,
		rules: rules,
	}
}

// NewResolverWithRules builds a resolver over a custom rule table.
func NewResolverWithRules(sigs Signatures, rules []Rule) *Resolver {
	return &Resolver{
		sigs:  sigs,
		rules: rules,
	}
}

// Normalize builds the identity string handed to the signature library.
func Normalize(userAgent, platform string) string {
	ua := strings.ToLower(userAgent)
	if platform == "" {
		return ua
	}

	return ua + " " + strings.ToLower(platform)
}

func (r *Resolver) IsMobile(identity string) bool {
	return r.sigs.Match(FamilyMobileQuick, identity)
}

func (r *Resolver) IsGameConsole(identity string) bool {
	return r.sigs.Match(FamilyGameConsole, identity)
}

// Resolve returns the name of the first matching rule.
func (r *Resolver) Resolve(s Subject) string {
	for _, rule := range r.rules {
		if rule.Match(s, r.sigs) {
			return rule.Name
		}
	}

	return Unknown
}

// Identify evaluates the mobile and console checks and the laptop and
// virtual machine heuristics once each, then resolves the device name.
func (r *Resolver) Identify(userAgent, platform string, gpu classify.GPU, screen classify.Screen) Device {
	id := Normalize(userAgent, platform)
	mobile := r.IsMobile(id)

	device := Device{
		IsMobile:         mobile,
		IsGameConsole:    r.IsGameConsole(id),
		IsLaptop:         classify.IsLaptop(screen, mobile),
		IsVirtualMachine: classify.IsVirtualMachine(gpu, screen, mobile),
	}
	device.Name = r.Resolve(Subject{
		UserAgent:        userAgent,
		Identity:         id,
		IsLaptop:         device.IsLaptop,
		IsVirtualMachine: device.IsVirtualMachine,
	})

	return device
}
