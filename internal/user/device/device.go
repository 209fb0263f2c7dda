package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// DisplayName extracts a human-readable device name from a User-Agent string,
// e.g. "Chrome on macOS" or "Safari on iPhone".
func DisplayName(userAgentString string) string {
	if strings.TrimSpace(userAgentString) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)
	if ua.Bot() {
		return "Bot"
	}

	browser, _ := ua.Browser()
	os := ua.OS()

	if ua.Mobile() {
		if platform := ua.Platform(); platform != "" {
			return strings.TrimSpace(browser + " on " + platform)
		}
	}

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}
