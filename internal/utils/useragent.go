package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// DeviceInfo holds parsed information from a User-Agent string. It is
// recorded on the cached operator reference so support can tell which
// device a session was resolved from.
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // mobile, tablet, desktop
	OS         string `json:"os"`          // Android 12, iOS 15, Windows 10, etc.
	Browser    string `json:"browser"`     // Chrome, Safari, Firefox, etc.
	IsBot      bool   `json:"is_bot"`      // Whether it's a bot/crawler
	Raw        string `json:"raw"`         // Original user agent string
}

// ParseUserAgent parses a User-Agent string and extracts device information
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" || userAgent == "Unknown" {
		return DeviceInfo{
			DeviceType: "unknown",
			OS:         "Unknown",
			Browser:    "Unknown",
			Raw:        userAgent,
		}
	}

	parser := ua.New(userAgent)

	browser, _ := parser.Browser()
	if browser == "" {
		browser = "Unknown"
	}

	osInfo := parser.OS()
	if osInfo == "" {
		osInfo = "Unknown"
	}

	return DeviceInfo{
		DeviceType: deviceType(parser),
		OS:         osInfo,
		Browser:    browser,
		IsBot:      parser.Bot(),
		Raw:        userAgent,
	}
}

// deviceType determines if the device is mobile, tablet, or desktop
func deviceType(parser *ua.UserAgent) string {
	if parser.Mobile() {
		if isTablet(parser.UA()) {
			return "tablet"
		}
		return "mobile"
	}
	return "desktop"
}

func isTablet(userAgent string) bool {
	lower := strings.ToLower(userAgent)
	return strings.Contains(lower, "tablet") || strings.Contains(lower, "ipad")
}
