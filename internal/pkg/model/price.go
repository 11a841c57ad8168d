package model

// ExternalPriceItem is one raw record from the price provider. Prices are in
// major currency units (NOK/EUR per kWh).
type ExternalPriceItem struct {
	NOKPerKWh float64 `json:"NOK_per_kWh"`
	EURPerKWh float64 `json:"EUR_per_kWh"`
	EXR       float64 `json:"EXR"`
	TimeStart string  `json:"time_start"`
	TimeEnd   string  `json:"time_end"`
}

type ExternalPriceItems []ExternalPriceItem

// PriceItem is the client-facing hourly price in øre per kWh.
type PriceItem struct {
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
	Price     int    `json:"price"`
}

// PriceData is the response body for the price endpoint. Now is nil when no
// item covers the current hour in the reference timezone.
type PriceData struct {
	Date       string      `json:"date"`
	Zone       string      `json:"zone"`
	Min        int         `json:"min"`
	Avg        int         `json:"avg"`
	Max        int         `json:"max"`
	Now        *int        `json:"now"`
	PriceItems []PriceItem `json:"priceItems"`
}
