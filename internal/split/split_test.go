package split

import (
	"testing"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

func testFrame(start time.Time, n int) *dataset.Frame {
	ts := make([]time.Time, n)
	vals := make([]float64, n)
	for i := range ts {
		ts[i] = start.Add(time.Duration(i) * time.Minute)
		vals[i] = float64(i)
	}
	f := dataset.New("EURUSD", ts)
	_ = f.AddColumn(domain.ColClose, vals)
	return f
}

func TestChronological_Partitions(t *testing.T) {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	f := testFrame(start, 10)

	cfg := domain.PrepConfig{
		TrainEnd:      start.Add(4 * time.Minute),
		ValidationEnd: start.Add(7 * time.Minute),
		TestEnd:       start.Add(9 * time.Minute),
	}

	parts := Chronological(f, cfg)

	if parts.Train.Len() != 5 {
		t.Errorf("Expected 5 train rows, got %d", parts.Train.Len())
	}
	if parts.Validation.Len() != 3 {
		t.Errorf("Expected 3 validation rows, got %d", parts.Validation.Len())
	}
	if parts.Test.Len() != 2 {
		t.Errorf("Expected 2 test rows, got %d", parts.Test.Len())
	}

	// Boundary rows land in the earlier partition.
	trainTs := parts.Train.Timestamps()
	if !trainTs[len(trainTs)-1].Equal(cfg.TrainEnd) {
		t.Errorf("Expected last train row at %v, got %v", cfg.TrainEnd, trainTs[len(trainTs)-1])
	}
	valTs := parts.Validation.Timestamps()
	if !valTs[0].After(cfg.TrainEnd) {
		t.Errorf("Expected first validation row after %v, got %v", cfg.TrainEnd, valTs[0])
	}
}

func TestChronological_NoOverlapNoLoss(t *testing.T) {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	f := testFrame(start, 60)

	cfg := domain.PrepConfig{
		TrainEnd:      start.Add(30 * time.Minute),
		ValidationEnd: start.Add(45 * time.Minute),
		TestEnd:       start.Add(59 * time.Minute),
	}

	parts := Chronological(f, cfg)

	total := parts.Train.Len() + parts.Validation.Len() + parts.Test.Len()
	if total != 60 {
		t.Fatalf("Expected all 60 rows across partitions, got %d", total)
	}

	seen := make(map[int64]string)
	for _, p := range []struct {
		name  string
		frame *dataset.Frame
	}{
		{domain.SplitTrain, parts.Train},
		{domain.SplitValidation, parts.Validation},
		{domain.SplitTest, parts.Test},
	} {
		for _, ts := range p.frame.Timestamps() {
			if prev, dup := seen[ts.Unix()]; dup {
				t.Errorf("Timestamp %v in both %s and %s", ts, prev, p.name)
			}
			seen[ts.Unix()] = p.name
		}
	}
}

func TestChronological_RowsBeyondTestEnd(t *testing.T) {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	f := testFrame(start, 10)

	cfg := domain.PrepConfig{
		TrainEnd:      start.Add(3 * time.Minute),
		ValidationEnd: start.Add(5 * time.Minute),
		TestEnd:       start.Add(7 * time.Minute),
	}

	parts := Chronological(f, cfg)

	total := parts.Train.Len() + parts.Validation.Len() + parts.Test.Len()
	if total != 8 {
		t.Errorf("Expected rows beyond test-end excluded, got %d of 10", total)
	}
}
