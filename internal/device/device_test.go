package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	uaAndroid      = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Mobile Safari/537.36"
	uaIPhone       = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1"
	uaIPad         = "Mozilla/5.0 (iPad; CPU OS 15_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.4 Mobile/15E148 Safari/604.1"
	uaWindowsPhone = "Mozilla/5.0 (compatible; MSIE 9.0; Windows Phone OS 7.5; Trident/5.0; IEMobile/9.0)"
	uaDesktop      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
)

func TestClassify_FromUserAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want Profile
	}{
		{"android phone", uaAndroid, Profile{Mobile, Android}},
		{"iphone", uaIPhone, Profile{Mobile, IOS}},
		{"ipad", uaIPad, Profile{Mobile, IOS}},
		{"generic mobile", uaWindowsPhone, Profile{Mobile, OSOther}},
		{"desktop", uaDesktop, Profile{Desktop, OSOther}},
		{"empty", "", Profile{Desktop, OSOther}},
		{"garbage", "curl/8.0.1", Profile{Desktop, OSOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify("", "", tt.ua))
		})
	}
}

func TestClassify_ExplicitOverrides(t *testing.T) {
	tests := []struct {
		name       string
		formFactor string
		osHint     string
		ua         string
		want       Profile
	}{
		{"explicit mobile android", "mobile", "android", uaDesktop, Profile{Mobile, Android}},
		{"explicit desktop over mobile ua", "desktop", "", uaAndroid, Profile{Desktop, Android}},
		{"iphone hint maps to ios", "mobile", "iPhone", "", Profile{Mobile, IOS}},
		{"ipad hint maps to ios", "", "ipad", uaAndroid, Profile{Mobile, IOS}},
		{"case insensitive", "MOBILE", "IOS", "", Profile{Mobile, IOS}},
		{"unrecognized values fall through", "phablet", "symbian", uaIPhone, Profile{Mobile, IOS}},
		{"os explicit, form factor inferred", "", "android", uaIPhone, Profile{Mobile, Android}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.formFactor, tt.osHint, tt.ua))
		})
	}
}
