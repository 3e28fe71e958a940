package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

func minuteAxis(start time.Time, n int) []time.Time {
	ts := make([]time.Time, n)
	for i := range ts {
		ts[i] = start.Add(time.Duration(i) * time.Minute)
	}
	return ts
}

func TestFromBars_Columns(t *testing.T) {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	bars := []domain.Bar{
		{Symbol: "EURUSD", Timestamp: start, Open: 1.0, High: 1.2, Low: 0.9, Close: 1.1, Volume: 0},
		{Symbol: "EURUSD", Timestamp: start.Add(time.Minute), Open: 1.1, High: 1.3, Low: 1.0, Close: 1.2, Volume: 0},
	}

	f := FromBars("EURUSD", bars)

	if f.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", f.Len())
	}
	expected := []string{domain.ColOpen, domain.ColHigh, domain.ColLow, domain.ColClose, domain.ColVolume}
	cols := f.Columns()
	if len(cols) != len(expected) {
		t.Fatalf("Expected %d columns, got %d", len(expected), len(cols))
	}
	for i, name := range expected {
		if cols[i] != name {
			t.Errorf("Column %d: expected %s, got %s", i, name, cols[i])
		}
	}

	closes, ok := f.Column(domain.ColClose)
	if !ok {
		t.Fatal("Expected close column")
	}
	if closes[0] != 1.1 || closes[1] != 1.2 {
		t.Errorf("Expected closes (1.1, 1.2), got (%v, %v)", closes[0], closes[1])
	}
}

func TestAddColumn_Errors(t *testing.T) {
	f := New("X", minuteAxis(time.Now().UTC(), 3))

	if err := f.AddColumn("", []float64{1, 2, 3}); err == nil {
		t.Error("Expected error for empty name")
	}
	if err := f.AddColumn("a", []float64{1, 2}); err == nil {
		t.Error("Expected error for length mismatch")
	}
	if err := f.AddColumn("a", []float64{1, 2, 3}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := f.AddColumn("a", []float64{4, 5, 6}); err == nil {
		t.Error("Expected error for duplicate column")
	}
}

func TestDropIncomplete(t *testing.T) {
	f := New("X", minuteAxis(time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC), 4))
	_ = f.AddColumn("a", []float64{1, math.NaN(), 3, 4})
	_ = f.AddColumn("b", []float64{1, 2, 3, math.NaN()})

	pruned, dropped := f.DropIncomplete()

	if dropped != 2 {
		t.Fatalf("Expected 2 dropped rows, got %d", dropped)
	}
	if pruned.Len() != 2 {
		t.Fatalf("Expected 2 remaining rows, got %d", pruned.Len())
	}
	a, _ := pruned.Column("a")
	if a[0] != 1 || a[1] != 3 {
		t.Errorf("Expected kept values (1, 3), got (%v, %v)", a[0], a[1])
	}
	// Original frame untouched.
	if f.Len() != 4 {
		t.Errorf("Expected original frame to keep 4 rows, got %d", f.Len())
	}
}

func TestDropIncomplete_NoNaN(t *testing.T) {
	f := New("X", minuteAxis(time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC), 3))
	_ = f.AddColumn("a", []float64{1, 2, 3})

	pruned, dropped := f.DropIncomplete()
	if dropped != 0 || pruned.Len() != 3 {
		t.Errorf("Expected 0 dropped and 3 rows, got %d dropped and %d rows", dropped, pruned.Len())
	}
}

func TestUntilBetween_Boundaries(t *testing.T) {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	f := New("X", minuteAxis(start, 5))
	_ = f.AddColumn("a", []float64{0, 1, 2, 3, 4})

	// Until is inclusive of the boundary.
	head := f.Until(start.Add(2 * time.Minute))
	if head.Len() != 3 {
		t.Fatalf("Expected 3 rows until t+2m, got %d", head.Len())
	}

	// Between is exclusive of after, inclusive of until.
	mid := f.Between(start.Add(2*time.Minute), start.Add(3*time.Minute))
	if mid.Len() != 1 {
		t.Fatalf("Expected 1 row in (t+2m, t+3m], got %d", mid.Len())
	}
	a, _ := mid.Column("a")
	if a[0] != 3 {
		t.Errorf("Expected value 3, got %v", a[0])
	}
}

func TestCopy_Independent(t *testing.T) {
	f := New("X", minuteAxis(time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC), 2))
	_ = f.AddColumn("a", []float64{1, 2})

	c := f.Copy()
	vals, _ := c.Column("a")
	vals[0] = 99

	orig, _ := f.Column("a")
	if orig[0] != 1 {
		t.Errorf("Expected original value 1 after mutating copy, got %v", orig[0])
	}
}
