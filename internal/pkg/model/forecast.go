package model

// AdviceType classifies a forecast segment.
type AdviceType string

func (a AdviceType) String() string {
	return string(a)
}

const (
	AdviceGood   AdviceType = "Good"
	AdviceNormal AdviceType = "Normal"
	AdviceAvoid  AdviceType = "Avoid"
)

// ForecastAdvice is one upstream forecast segment. AveragePrice arrives in
// major currency units and leaves this service in øre.
type ForecastAdvice struct {
	Loss         float64    `json:"loss"`
	Type         AdviceType `json:"type"`
	From         string     `json:"from"`
	To           string     `json:"to"`
	AveragePrice float64    `json:"averagePrice"`
	DataSource   string     `json:"dataSource"`
}

type ForecastVAT struct {
	Rate   float64 `json:"rate"`
	HasVAT bool    `json:"hasVAT"`
}

type ForecastPriceUnits struct {
	Currency   string      `json:"currency"`
	VAT        ForecastVAT `json:"vat"`
	EnergyUnit string      `json:"energyUnit"`
}

type ForecastSegmentOptions struct {
	SegmentSize int `json:"segmentSize"`
}

// ForecastResponse mirrors the forecast provider payload. All fields other
// than the advice prices pass through unchanged.
type ForecastResponse struct {
	PriceArea      string                 `json:"priceArea"`
	PriceUnits     ForecastPriceUnits     `json:"priceUnits"`
	SegmentOptions ForecastSegmentOptions `json:"segmentOptions"`
	ForecastAdvice []ForecastAdvice       `json:"forecastAdvice"`
}

// Segment is one quadrant-of-day cell in the grouped forecast table.
type Segment struct {
	AveragePrice int  `json:"averagePrice"`
	IsGoodTime   bool `json:"isGoodTime"`
	IsBadTime    bool `json:"isBadTime"`
}

// ForecastItem is one row of the grouped forecast: a day label plus its
// segments in upstream (chronological) order.
type ForecastItem struct {
	DayOfWeek string    `json:"dayOfWeek"`
	Segments  []Segment `json:"segments"`
}
