package device

import (
	"regexp"
	"strings"

	"github.com/mssola/user_agent"
)

// FormFactor is the coarse client category.
type FormFactor string

const (
	Mobile  FormFactor = "mobile"
	Desktop FormFactor = "desktop"
)

// OS is the mobile operating system classification. OSOther covers desktop
// requests and mobile clients whose OS could not be identified.
type OS string

const (
	Android OS = "android"
	IOS     OS = "ios"
	OSOther OS = "other"
)

// Profile is the per-request device classification. Immutable once computed.
type Profile struct {
	FormFactor FormFactor
	OS         OS
}

var iosRe = regexp.MustCompile(`(?i)iphone|ipad|ipod`)

// Classify derives a Profile from explicit overrides and a user-agent
// string. Explicit values win per field when recognized; anything else falls
// through to user-agent inference. Total: every input yields a fully
// populated Profile (empty/unmatched means desktop + other).
func Classify(formFactor, osHint, userAgent string) Profile {
	p := infer(userAgent)

	switch strings.ToLower(strings.TrimSpace(formFactor)) {
	case "mobile":
		p.FormFactor = Mobile
	case "desktop":
		p.FormFactor = Desktop
	}

	switch strings.ToLower(strings.TrimSpace(osHint)) {
	case "android":
		p.OS = Android
	case "ios", "iphone", "ipad":
		p.OS = IOS
	}
	return p
}

func infer(userAgent string) Profile {
	switch {
	case strings.Contains(strings.ToLower(userAgent), "android"):
		return Profile{FormFactor: Mobile, OS: Android}
	case iosRe.MatchString(userAgent):
		return Profile{FormFactor: Mobile, OS: IOS}
	case user_agent.New(userAgent).Mobile():
		return Profile{FormFactor: Mobile, OS: OSOther}
	default:
		return Profile{FormFactor: Desktop, OS: OSOther}
	}
}
