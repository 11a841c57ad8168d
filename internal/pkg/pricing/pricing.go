package pricing

import (
	"regexp"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/strompris/strompris/internal/pkg/model"
)

var (
	zonePattern = regexp.MustCompile(`^NO[1-5]$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidZone reports whether s is one of the five price area codes NO1-NO5.
func ValidZone(s string) bool {
	return zonePattern.MatchString(s)
}

// ValidDate reports whether s has the YYYY-MM-DD shape. Calendar validity is
// intentionally not checked; the price provider answers 404 for days that do
// not exist, same as for days it has no data for.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

var hundred = decimal.NewFromInt(100)

// ToOre converts a price in major currency units (NOK per kWh) to whole øre.
// Ties round away from zero, for both price items and forecast advice.
func ToOre(major float64) int {
	return int(decimal.NewFromFloat(major).Mul(hundred).Round(0).IntPart())
}

// Summarize returns min, rounded mean and max over the item prices. All
// three are zero for an empty series.
func Summarize(items []model.PriceItem) (min, avg, max int) {
	if len(items) == 0 {
		return 0, 0, 0
	}
	prices := lo.Map(items, func(item model.PriceItem, _ int) int {
		return item.Price
	})
	sum := lo.Sum(prices)
	avg = int(decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(len(prices)))).
		Round(0).IntPart())
	return lo.Min(prices), avg, lo.Max(prices)
}

// ResolveNow finds the price of the item covering the current hour. Each
// time_start is parsed and compared by calendar date and hour in loc, so the
// lookup holds up even when upstream switches UTC-offset notation across a
// DST boundary. Returns nil when no item matches.
func ResolveNow(items []model.PriceItem, ref time.Time, loc *time.Location) *int {
	local := ref.In(loc)
	for _, item := range items {
		start, err := time.Parse(time.RFC3339, item.TimeStart)
		if err != nil {
			continue
		}
		start = start.In(loc)
		sameDay := start.Year() == local.Year() &&
			start.Month() == local.Month() &&
			start.Day() == local.Day()
		if sameDay && start.Hour() == local.Hour() {
			return lo.ToPtr(item.Price)
		}
	}
	return nil
}

// FromExternal converts one raw provider record into a client-facing item.
func FromExternal(ext model.ExternalPriceItem) model.PriceItem {
	return model.PriceItem{
		TimeStart: ext.TimeStart,
		TimeEnd:   ext.TimeEnd,
		Price:     ToOre(ext.NOKPerKWh),
	}
}
