package identity

// Signatures is the device signature library consulted by the resolver.
// Match reports whether a normalized identity string belongs to family.
type Signatures interface {
	Match(family, identity string) bool
}

// Family names the resolver queries.
const (
	FamilyIPhone          = "iphone"
	FamilyIPod            = "ipod"
	FamilyIPad            = "ipad"
	FamilyAndroidPhone    = "android_phone"
	FamilyAndroidTablet   = "android_tablet"
	FamilyS60OSSBrowser   = "s60_oss_browser"
	FamilySeries60        = "series60"
	FamilySeries70        = "series70"
	FamilySeries80        = "series80"
	FamilySeries90        = "series90"
	FamilySymbian         = "symbian"
	FamilyWindowsPhone7   = "windows_phone_7"
	FamilyWindowsPhone8   = "windows_phone_8"
	FamilyWindowsPhone10  = "windows_phone_10"
	FamilyWindowsMobile   = "windows_mobile"
	FamilyBlackBerryTab   = "blackberry_tablet"
	FamilyBlackBerryWK    = "blackberry_webkit"
	FamilyBlackBerryTouch = "blackberry_touch"
	FamilyBlackBerryHigh  = "blackberry_high"
	FamilyBlackBerry      = "blackberry"
	FamilyPalmOS          = "palm_os"
	FamilyPalmWebOS       = "palm_webos"
	FamilyGarminNuvifone  = "garmin_nuvifone"
	FamilyArchos          = "archos"
	FamilyBrew            = "brew"
	FamilyDangerHiptop    = "danger_hiptop"
	FamilyMaemoTablet     = "maemo_tablet"
	FamilySonyMylo        = "sony_mylo"
	FamilyAmazonSilk      = "amazon_silk"
	FamilyKindle          = "kindle"
	FamilyPlayStation     = "sony_playstation"
	FamilyNintendoDS      = "nintendo_ds"
	FamilyNintendoWii     = "nintendo_wii"
	FamilyNintendo        = "nintendo"
	FamilyXbox            = "xbox"
	FamilyMobileQuick     = "mobile_quick"
	FamilyGameConsole     = "game_console"
)

// Device is the resolved identity of a host.
type Device struct {
	Name             string
	IsMobile         bool
	IsGameConsole    bool
	IsLaptop         bool
	IsVirtualMachine bool
}
