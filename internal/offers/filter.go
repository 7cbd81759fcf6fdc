package offers

import (
	"slices"
	"strings"
	"unicode"

	"offer-proxy/internal/device"
)

// Eligible narrows a normalized offer list to the ones showable for the
// given country filter and device profile. All three predicates must pass.
// Unrecognized upstream data degrades to a match (fail-open), except where
// an explicit opposing-OS exclusion fires.
func Eligible(in []Offer, country string, prof device.Profile) []Offer {
	country = strings.ToUpper(strings.TrimSpace(country))
	out := make([]Offer, 0, len(in))
	for _, o := range in {
		if matchesCountry(o, country) && matchesConversionType(o, prof) && matchesDevice(o, prof) {
			out = append(out, o)
		}
	}
	return out
}

// matchesCountry retains globally targeted offers (empty country list) and
// exact code matches. No filter retains everything.
func matchesCountry(o Offer, country string) bool {
	if country == "" || len(o.Countries) == 0 {
		return true
	}
	return slices.Contains(o.Countries, country)
}

// matchesConversionType rejects install-driven (CPI-like) offers on desktop
// and action-driven (CPA-like) offers on mobile. Untagged offers always pass.
func matchesConversionType(o Offer, prof device.Profile) bool {
	tag := letters(o.ConversionType)
	cpiLike := strings.Contains(tag, "CPI") || strings.Contains(tag, "INSTALL")
	cpaLike := strings.Contains(tag, "CPA") || strings.Contains(tag, "CPL") || strings.Contains(tag, "CPS")
	if prof.FormFactor == device.Desktop {
		return !cpiLike
	}
	return cpiLike || !cpaLike
}

// matchesDevice matches free-text upstream device tags by keyword
// containment. The opposing-OS exclusion keeps an Android-only campaign from
// leaking to iOS via a generic "mobile" token, and vice versa.
func matchesDevice(o Offer, prof device.Profile) bool {
	if len(o.Devices) == 0 {
		return true
	}
	tokens := make([]string, len(o.Devices))
	for i, d := range o.Devices {
		tokens[i] = strings.ToLower(d)
	}
	has := func(keywords ...string) bool {
		for _, t := range tokens {
			for _, k := range keywords {
				if strings.Contains(t, k) {
					return true
				}
			}
		}
		return false
	}

	if prof.FormFactor == device.Desktop {
		return has("desktop", "pc", "windows", "mac", "macos")
	}
	switch prof.OS {
	case device.Android:
		return has("android") ||
			(has("mobile", "smartphone", "tablet") && !has("iphone", "ios", "ipad"))
	case device.IOS:
		return has("iphone", "ios", "ipad", "ipod") ||
			(has("mobile", "smartphone", "tablet") && !has("android"))
	default:
		return has("mobile", "smartphone", "tablet", "android", "iphone", "ios")
	}
}

// letters strips non-letter runes and uppercases, so tags like "CPI (soi)"
// and "cpa_lead" classify the same as their plain forms.
func letters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
