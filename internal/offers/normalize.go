package offers

import (
	"math"
	"strconv"
	"strings"
)

// Normalize maps one raw upstream record to its canonical form. It never
// fails: a malformed numeric field degrades to payout=0 / EPC absent rather
// than dropping the offer.
func Normalize(raw RawOffer) Offer {
	o := Offer{
		ID:          raw.ID,
		Name:        raw.Name,
		ShortName:   raw.ShortName,
		Description: raw.Description,
		Adcopy:      raw.Adcopy,
		ImageURL:    raw.Picture,
		TrackingURL: raw.Link,
	}
	if o.ShortName == "" {
		o.ShortName = raw.Name
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(raw.Payout), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 {
		o.Payout = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw.EPC), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		o.EPC = &v
	}

	o.Countries = splitList(raw.Country, strings.ToUpper)
	o.Devices = splitList(raw.Device, nil)

	if t := strings.TrimSpace(raw.Ctype); t != "" {
		o.ConversionType = strings.ToUpper(t)
	}
	return o
}

// splitList splits a comma-separated upstream field, trimming each segment
// and dropping empties. An empty source yields nil ("no restriction").
func splitList(s string, canon func(string) string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if canon != nil {
			seg = canon(seg)
		}
		out = append(out, seg)
	}
	return out
}
