package features

import (
	"math"
	"testing"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

func testConfig() domain.PrepConfig {
	return domain.PrepConfig{
		PredictionPeriods: []int{5},
		EMAPeriods:        []int{5, 10},
		SlopePeriods:      []int{5, 10},
		ZNormWindow:       10,
	}
}

func barFrame(closes []float64) *dataset.Frame {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	ts := make([]time.Time, len(closes))
	high := make([]float64, len(closes))
	low := make([]float64, len(closes))
	for i := range closes {
		ts[i] = start.Add(time.Duration(i) * time.Minute)
		high[i] = closes[i] + 0.5
		low[i] = closes[i] - 0.5
	}
	f := dataset.New("EURUSD", ts)
	_ = f.AddColumn(domain.ColHigh, high)
	_ = f.AddColumn(domain.ColLow, low)
	_ = f.AddColumn(domain.ColClose, closes)
	return f
}

func constantCloses(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestGenerate_FeatureList(t *testing.T) {
	f := barFrame(constantCloses(30, 100))

	names, err := Generate(f, testConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{
		"price_normalized",
		"return_1m",
		"ema_5m_normalized",
		"ema_5m_z",
		"ema_10m_normalized",
		"ema_10m_z",
		"slope_ema_5m_normalized",
		"slope2_ema_5m_normalized",
		"slope_ema_10m_normalized",
		"slope2_ema_10m_normalized",
		"price_z",
		"price_range",
		"minute_of_day",
		"day_of_week",
		"hour_of_day",
	}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d features, got %d: %v", len(expected), len(names), names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Feature %d: expected %s, got %s", i, name, names[i])
		}
	}

	// Raw intermediates are columns but never features.
	for _, raw := range []string{"ema_5m", "slope_ema_5m", "slope2_ema_5m"} {
		if !f.Has(raw) {
			t.Errorf("Expected intermediate column %s on the frame", raw)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(barFrame(constantCloses(30, 100)), testConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Generate(barFrame(constantCloses(30, 100)), testConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("Expected identical list lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Feature %d: expected %s, got %s", i, first[i], second[i])
		}
	}
}

func TestGenerate_ConstantPrices(t *testing.T) {
	f := barFrame(constantCloses(20, 100))
	if _, err := Generate(f, testConfig()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// EMA of a constant series is the constant, so its normalized form is 0.
	emaNorm, _ := f.Column("ema_5m_normalized")
	for i, v := range emaNorm {
		if math.Abs(v) > 1e-12 {
			t.Errorf("Row %d: expected ema_5m_normalized 0 on constant prices, got %v", i, v)
		}
	}

	// Zero spread against the epsilon denominator keeps z-scores at 0.
	priceZ, _ := f.Column("price_z")
	for i, v := range priceZ {
		if v != 0 {
			t.Errorf("Row %d: expected price_z 0 on constant prices, got %v", i, v)
		}
	}

	returns, _ := f.Column("return_1m")
	if !math.IsNaN(returns[0]) {
		t.Errorf("Expected return_1m NaN at row 0, got %v", returns[0])
	}
	for i := 1; i < len(returns); i++ {
		if returns[i] != 0 {
			t.Errorf("Row %d: expected zero return on constant prices, got %v", i, returns[i])
		}
	}
}

func TestGenerate_SlopeSpanWithoutEMA(t *testing.T) {
	cfg := testConfig()
	cfg.SlopePeriods = []int{5, 60} // 60 has no EMA span

	f := barFrame(constantCloses(20, 100))
	names, err := Generate(f, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, name := range names {
		if name == "slope_ema_60m_normalized" {
			t.Error("Expected slope span without matching EMA span to be skipped")
		}
	}
	if f.Has("slope_ema_60m") {
		t.Error("Expected no slope_ema_60m column")
	}
}

func TestGenerate_CalendarFeatures(t *testing.T) {
	// Monday 2020-01-06 13:45 UTC.
	start := time.Date(2020, 1, 6, 13, 45, 0, 0, time.UTC)
	ts := []time.Time{start, start.Add(time.Minute)}
	f := dataset.New("EURUSD", ts)
	_ = f.AddColumn(domain.ColClose, []float64{100, 100})

	if _, err := Generate(f, testConfig()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	minuteOfDay, _ := f.Column("minute_of_day")
	if minuteOfDay[0] != 13*60+45 {
		t.Errorf("Expected minute_of_day %d, got %v", 13*60+45, minuteOfDay[0])
	}
	dayOfWeek, _ := f.Column("day_of_week")
	if dayOfWeek[0] != 0 {
		t.Errorf("Expected day_of_week 0 for Monday, got %v", dayOfWeek[0])
	}
	hourOfDay, _ := f.Column("hour_of_day")
	if hourOfDay[0] != 13 {
		t.Errorf("Expected hour_of_day 13, got %v", hourOfDay[0])
	}
}

func TestGenerate_NoHighLow(t *testing.T) {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	ts := []time.Time{start, start.Add(time.Minute)}
	f := dataset.New("EURUSD", ts)
	_ = f.AddColumn(domain.ColClose, []float64{100, 101})

	names, err := Generate(f, testConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, name := range names {
		if name == "price_range" {
			t.Error("Expected no price_range without high/low columns")
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	empty := dataset.New("X", nil)
	if _, err := Generate(empty, testConfig()); err == nil {
		t.Error("Expected error for empty frame")
	}

	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	noClose := dataset.New("X", []time.Time{start})
	_ = noClose.AddColumn(domain.ColOpen, []float64{1})
	if _, err := Generate(noClose, testConfig()); err == nil {
		t.Error("Expected error for missing close column")
	}
}

func TestEMA_SeededWithFirstValue(t *testing.T) {
	vals := []float64{10, 20, 20, 20}
	out := ema(vals, 3) // alpha = 0.5

	if out[0] != 10 {
		t.Errorf("Expected EMA seeded with first value 10, got %v", out[0])
	}
	expected := []float64{10, 15, 17.5, 18.75}
	for i := range expected {
		if math.Abs(out[i]-expected[i]) > 1e-12 {
			t.Errorf("Row %d: expected %v, got %v", i, expected[i], out[i])
		}
	}
}

func TestRollingMean_ExpandingStart(t *testing.T) {
	vals := []float64{2, 4, 6, 8, 10}
	out := rollingMean(vals, 3)

	expected := []float64{2, 3, 4, 6, 8}
	for i := range expected {
		if math.Abs(out[i]-expected[i]) > 1e-12 {
			t.Errorf("Row %d: expected %v, got %v", i, expected[i], out[i])
		}
	}
}

func TestRollingStd_SampleVariance(t *testing.T) {
	vals := []float64{1, 3, 5, 7}
	out := rollingStd(vals, 3)

	// Single sample has no spread.
	if out[0] != 0 {
		t.Errorf("Expected std 0 for a single sample, got %v", out[0])
	}
	// Two samples: sample std of {1,3} is sqrt(2).
	if math.Abs(out[1]-math.Sqrt2) > 1e-12 {
		t.Errorf("Expected std sqrt(2), got %v", out[1])
	}
	// Full window {1,3,5} and {3,5,7}: sample std 2.
	if math.Abs(out[2]-2) > 1e-12 || math.Abs(out[3]-2) > 1e-12 {
		t.Errorf("Expected std 2 for full windows, got %v and %v", out[2], out[3])
	}
}

func TestDiff(t *testing.T) {
	out := diff([]float64{5, 7, 4})
	if !math.IsNaN(out[0]) {
		t.Errorf("Expected NaN at row 0, got %v", out[0])
	}
	if out[1] != 2 || out[2] != -3 {
		t.Errorf("Expected diffs (2, -3), got (%v, %v)", out[1], out[2])
	}
}
