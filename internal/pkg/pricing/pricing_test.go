package pricing

import (
	"testing"
	"time"

	"github.com/strompris/strompris/internal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidZone(t *testing.T) {
	tests := map[string]struct {
		zone string
		want bool
	}{
		"NO1":        {zone: "NO1", want: true},
		"NO2":        {zone: "NO2", want: true},
		"NO3":        {zone: "NO3", want: true},
		"NO4":        {zone: "NO4", want: true},
		"NO5":        {zone: "NO5", want: true},
		"NO6":        {zone: "NO6", want: false},
		"NO0":        {zone: "NO0", want: false},
		"NOX":        {zone: "NOX", want: false},
		"lowercase":  {zone: "no1", want: false},
		"empty":      {zone: "", want: false},
		"padded":     {zone: " NO1", want: false},
		"long":       {zone: "NORWAY1", want: false},
		"trailing":   {zone: "NO1 ", want: false},
		"two digits": {zone: "NO15", want: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidZone(tt.zone))
		})
	}
}

func TestValidDate(t *testing.T) {
	tests := map[string]struct {
		date string
		want bool
	}{
		"valid":            {date: "2025-06-08", want: true},
		"slashes":          {date: "2025/06/08", want: false},
		"short year":       {date: "25-06-08", want: false},
		"missing day":      {date: "2025-06", want: false},
		"empty":            {date: "", want: false},
		"letters":          {date: "yyyy-mm-dd", want: false},
		"trailing":         {date: "2025-06-08T00:00", want: false},
		"single digits":    {date: "2025-6-8", want: false},
		"calendar invalid": {date: "2025-13-40", want: true}, // shape only, provider answers 404
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDate(tt.date))
		})
	}
}

func TestToOre(t *testing.T) {
	assert.Equal(t, 45, ToOre(0.45))
	assert.Equal(t, 50, ToOre(0.5))
	assert.Equal(t, 0, ToOre(0))
	assert.Equal(t, 100, ToOre(1))
	assert.Equal(t, 123, ToOre(1.234))
	assert.Equal(t, 124, ToOre(1.235)) // ties away from zero
	assert.Equal(t, -124, ToOre(-1.235))
	assert.Equal(t, -45, ToOre(-0.45))
}

func TestToOre_Monotonic(t *testing.T) {
	values := []float64{-1.2, -0.005, 0, 0.004, 0.45, 0.455, 0.5, 1.9999, 2}
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, ToOre(values[i-1]), ToOre(values[i]),
			"ToOre(%v) > ToOre(%v)", values[i-1], values[i])
	}
}

func items(prices ...int) []model.PriceItem {
	out := make([]model.PriceItem, 0, len(prices))
	for _, p := range prices {
		out = append(out, model.PriceItem{Price: p})
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := map[string]struct {
		prices []model.PriceItem
		min    int
		avg    int
		max    int
	}{
		"empty":        {prices: nil, min: 0, avg: 0, max: 0},
		"single":       {prices: items(50), min: 50, avg: 50, max: 50},
		"spread":       {prices: items(10, 20, 60), min: 10, avg: 30, max: 60},
		"rounded mean": {prices: items(1, 2), min: 1, avg: 2, max: 2}, // 1.5 rounds away from zero
		"negative":     {prices: items(-5, 5), min: -5, avg: 0, max: 5},
		"unsorted":     {prices: items(90, 12, 47), min: 12, avg: 50, max: 90},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			min, avg, max := Summarize(tt.prices)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.avg, avg)
			assert.Equal(t, tt.max, max)
		})
	}
}

func TestSummarize_Bounds(t *testing.T) {
	series := items(31, 7, 55, 7, 102, 44)
	min, _, max := Summarize(series)
	for _, item := range series {
		assert.GreaterOrEqual(t, item.Price, min)
		assert.LessOrEqual(t, item.Price, max)
	}
}

func oslo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)
	return loc
}

func TestResolveNow_Match(t *testing.T) {
	loc := oslo(t)
	series := []model.PriceItem{
		{TimeStart: "2025-06-08T00:00:00+02:00", TimeEnd: "2025-06-08T01:00:00+02:00", Price: 50},
		{TimeStart: "2025-06-08T01:00:00+02:00", TimeEnd: "2025-06-08T02:00:00+02:00", Price: 61},
	}

	ref := time.Date(2025, 6, 8, 0, 15, 0, 0, loc)
	got := ResolveNow(series, ref, loc)
	require.NotNil(t, got)
	assert.Equal(t, 50, *got)

	ref = time.Date(2025, 6, 8, 1, 59, 0, 0, loc)
	got = ResolveNow(series, ref, loc)
	require.NotNil(t, got)
	assert.Equal(t, 61, *got)
}

func TestResolveNow_NoMatch(t *testing.T) {
	loc := oslo(t)
	series := []model.PriceItem{
		{TimeStart: "2025-06-08T00:00:00+02:00", Price: 50},
	}

	ref := time.Date(2025, 6, 8, 5, 0, 0, 0, loc)
	assert.Nil(t, ResolveNow(series, ref, loc))

	ref = time.Date(2025, 6, 9, 0, 15, 0, 0, loc) // same hour, next day
	assert.Nil(t, ResolveNow(series, ref, loc))

	assert.Nil(t, ResolveNow(nil, ref, loc))
}

func TestResolveNow_DifferentOffsetNotation(t *testing.T) {
	// Upstream lists the series in UTC; the lookup still finds the hour
	// because items are compared as instants in the reference zone.
	loc := oslo(t)
	series := []model.PriceItem{
		{TimeStart: "2025-06-07T22:00:00Z", Price: 42}, // 00:00 Oslo on June 8
	}
	ref := time.Date(2025, 6, 8, 0, 30, 0, 0, loc)
	got := ResolveNow(series, ref, loc)
	require.NotNil(t, got)
	assert.Equal(t, 42, *got)
}

func TestResolveNow_SkipsUnparseable(t *testing.T) {
	loc := oslo(t)
	series := []model.PriceItem{
		{TimeStart: "not a timestamp", Price: 1},
		{TimeStart: "2025-06-08T13:00:00+02:00", Price: 77},
	}
	ref := time.Date(2025, 6, 8, 13, 5, 0, 0, loc)
	got := ResolveNow(series, ref, loc)
	require.NotNil(t, got)
	assert.Equal(t, 77, *got)
}

func TestFromExternal(t *testing.T) {
	got := FromExternal(model.ExternalPriceItem{
		NOKPerKWh: 0.455,
		EURPerKWh: 0.04,
		TimeStart: "2025-06-08T00:00:00+02:00",
		TimeEnd:   "2025-06-08T01:00:00+02:00",
	})
	assert.Equal(t, model.PriceItem{
		TimeStart: "2025-06-08T00:00:00+02:00",
		TimeEnd:   "2025-06-08T01:00:00+02:00",
		Price:     46,
	}, got)
}
