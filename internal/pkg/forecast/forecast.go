package forecast

import (
	"fmt"
	"time"

	"github.com/strompris/strompris/internal/pkg/model"
	"github.com/strompris/strompris/internal/pkg/pricing"
)

const dayLabelLayout = "Monday 2 January"

// GroupByDay buckets forecast advice into one row per calendar day, labelled
// "Today"/"Tomorrow" or a long-form weekday+date. Day rows appear in
// first-seen order and segments keep the upstream chronological order, which
// with 6 hour segments gives the fixed 00-06/06-12/12-18/18-00 quadrants.
// Prices are converted to øre.
func GroupByDay(advice []model.ForecastAdvice, ref time.Time, loc *time.Location) ([]model.ForecastItem, error) {
	local := ref.In(loc)
	tomorrow := local.AddDate(0, 0, 1)

	order := make([]string, 0, 4)
	grouped := make(map[string][]model.Segment)

	for _, entry := range advice {
		from, err := time.Parse(time.RFC3339, entry.From)
		if err != nil {
			return nil, fmt.Errorf("unparseable forecast start %q: %w", entry.From, err)
		}
		from = from.In(loc)

		var label string
		switch {
		case sameDate(from, local):
			label = "Today"
		case sameDate(from, tomorrow):
			label = "Tomorrow"
		default:
			label = from.Format(dayLabelLayout)
		}

		if _, ok := grouped[label]; !ok {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], model.Segment{
			AveragePrice: pricing.ToOre(entry.AveragePrice),
			IsGoodTime:   entry.Type == model.AdviceGood,
			IsBadTime:    entry.Type == model.AdviceAvoid,
		})
	}

	items := make([]model.ForecastItem, 0, len(order))
	for _, label := range order {
		items = append(items, model.ForecastItem{
			DayOfWeek: label,
			Segments:  grouped[label],
		})
	}
	return items, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
