package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

// ColumnSummary pairs a column name with its descriptive statistics.
type ColumnSummary struct {
	Name    string
	Summary Summary
}

// Report holds the data-understanding output for one symbol's raw feed.
type Report struct {
	Symbol      string
	Rows        int
	Start       time.Time
	End         time.Time
	Columns     []ColumnSummary
	ReturnStats Summary
	Findings    []string
}

// Build computes the report from a raw bar frame.
func Build(f *dataset.Frame) *Report {
	r := &Report{
		Symbol: f.Symbol(),
		Rows:   f.Len(),
	}
	ts := f.Timestamps()
	if len(ts) > 0 {
		r.Start = ts[0]
		r.End = ts[len(ts)-1]
	}

	for _, name := range f.Columns() {
		vals, _ := f.Column(name)
		r.Columns = append(r.Columns, ColumnSummary{Name: name, Summary: Describe(vals)})
	}

	if closes, ok := f.Column(domain.ColClose); ok && len(closes) > 1 {
		returns := make([]float64, len(closes))
		returns[0] = math.NaN()
		for i := 1; i < len(closes); i++ {
			returns[i] = (closes[i] - closes[i-1]) / closes[i-1]
		}
		r.ReturnStats = Describe(returns)
	}

	r.Findings = findings(f)
	return r
}

// findings derives automatic observations about the feed.
func findings(f *dataset.Frame) []string {
	var out []string
	ts := f.Timestamps()
	if len(ts) == 0 {
		return []string{"feed is empty"}
	}

	// Time-grid gaps: spans longer than one minute between consecutive bars.
	// Market closures show up here too, so the count is descriptive only.
	gaps := 0
	var longest time.Duration
	for i := 1; i < len(ts); i++ {
		d := ts[i].Sub(ts[i-1])
		if d > time.Minute {
			gaps++
			if d > longest {
				longest = d
			}
		}
	}
	if gaps > 0 {
		out = append(out, fmt.Sprintf("%d gaps longer than one minute, longest %s", gaps, longest))
	} else {
		out = append(out, "time grid is contiguous at one-minute spacing")
	}

	if closes, ok := f.Column(domain.ColClose); ok {
		nonPositive := 0
		for _, v := range closes {
			if v <= 0 {
				nonPositive++
			}
		}
		if nonPositive > 0 {
			out = append(out, fmt.Sprintf("%d bars have non-positive close prices", nonPositive))
		}
	}

	if volumes, ok := f.Column(domain.ColVolume); ok {
		zero := 0
		for _, v := range volumes {
			if v == 0 {
				zero++
			}
		}
		if zero == len(volumes) {
			out = append(out, "volume is zero throughout (index feed)")
		} else if zero > 0 {
			out = append(out, fmt.Sprintf("%d bars have zero volume", zero))
		}
	}

	return out
}

// RenderMarkdown renders the report.
func (r *Report) RenderMarkdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Data Understanding: %s\n\n", r.Symbol))
	sb.WriteString(fmt.Sprintf("- Rows: %d\n", r.Rows))
	if !r.Start.IsZero() {
		sb.WriteString(fmt.Sprintf("- Range: %s to %s\n", r.Start.UTC().Format(time.RFC3339), r.End.UTC().Format(time.RFC3339)))
	}
	sb.WriteString("\n## Column statistics\n\n")
	sb.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, c := range r.Columns {
		s := c.Summary
		sb.WriteString(fmt.Sprintf("| %s | %d | %.6g | %.6g | %.6g | %.6g | %.6g | %.6g | %.6g |\n",
			c.Name, s.Count, s.Mean, s.Std, s.Min, s.P25, s.Median, s.P75, s.Max))
	}

	if r.ReturnStats.Count > 0 {
		s := r.ReturnStats
		sb.WriteString("\n## 1-minute returns\n\n")
		sb.WriteString(fmt.Sprintf("- count: %d\n- mean: %.6g\n- std: %.6g\n- min: %.6g\n- max: %.6g\n",
			s.Count, s.Mean, s.Std, s.Min, s.Max))
	}

	sb.WriteString("\n## Findings\n\n")
	for _, finding := range r.Findings {
		sb.WriteString("- " + finding + "\n")
	}

	return sb.String()
}
