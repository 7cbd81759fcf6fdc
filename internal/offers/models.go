package offers

// RawOffer is one record as the upstream feed returns it. Numeric fields
// arrive as decimal strings; country and device are comma-separated lists.
type RawOffer struct {
	ID          int64  `json:"offerid"`
	Name        string `json:"name"`
	ShortName   string `json:"name_short"`
	Description string `json:"description"`
	Adcopy      string `json:"adcopy"`
	Picture     string `json:"picture"`
	Payout      string `json:"payout"`
	Country     string `json:"country"`
	Device      string `json:"device"`
	Link        string `json:"link"`
	EPC         string `json:"epc"`
	Ctype       string `json:"ctype"`
}

// Offer is the canonical, normalized view served to clients.
// Payout is always finite and >= 0. EPC is nil when the upstream value was
// missing or unparseable. ConversionType is uppercased; empty means the
// upstream sent no tag (treated as "no restriction" by filtering).
type Offer struct {
	ID             int64    `json:"offerid"`
	Name           string   `json:"name"`
	ShortName      string   `json:"name_short"`
	Description    string   `json:"description"`
	Adcopy         string   `json:"adcopy"`
	ImageURL       string   `json:"picture"`
	Payout         float64  `json:"payout"`
	Countries      []string `json:"countries"`
	Devices        []string `json:"devices"`
	TrackingURL    string   `json:"link"`
	EPC            *float64 `json:"epc,omitempty"`
	ConversionType string   `json:"ctype,omitempty"`
}
