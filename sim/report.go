package sim

import (
	"fmt"

	"github.com/milosgajdos/go-gpsmooth/location"
	"github.com/montanaflynn/stats"
)

// ErrorStats summarises position errors in meters
type ErrorStats struct {
	Mean   float64
	Median float64
	P95    float64
	Max    float64
}

// String implements the Stringer interface.
func (e ErrorStats) String() string {
	return fmt.Sprintf("mean=%.2fm median=%.2fm p95=%.2fm max=%.2fm", e.Mean, e.Median, e.P95, e.Max)
}

// Report compares raw and smoothed fixes against the truth
type Report struct {
	// N is the number of compared fixes
	N int
	// Raw are the receiver errors
	Raw ErrorStats
	// Smoothed are the smoother errors
	Smoothed ErrorStats
}

// String implements the Stringer interface.
func (r Report) String() string {
	return fmt.Sprintf("Report{\nN=%d\nRaw=%v\nSmoothed=%v\n}", r.N, r.Raw, r.Smoothed)
}

// NewReport computes horizontal error statistics of raw and smoothed fixes.
// It returns error if the slices are empty or differ in length.
func NewReport(truth, raw, smoothed []location.Fix) (Report, error) {
	if len(truth) == 0 {
		return Report{}, fmt.Errorf("no fixes to compare")
	}

	if len(raw) != len(truth) || len(smoothed) != len(truth) {
		return Report{}, fmt.Errorf("fix count mismatch: truth %d, raw %d, smoothed %d",
			len(truth), len(raw), len(smoothed))
	}

	rs, err := errorStats(truth, raw)
	if err != nil {
		return Report{}, fmt.Errorf("raw errors: %w", err)
	}

	ss, err := errorStats(truth, smoothed)
	if err != nil {
		return Report{}, fmt.Errorf("smoothed errors: %w", err)
	}

	return Report{
		N:        len(truth),
		Raw:      rs,
		Smoothed: ss,
	}, nil
}

func errorStats(truth, fixes []location.Fix) (ErrorStats, error) {
	errs := make(stats.Float64Data, len(truth))
	for i := range truth {
		errs[i] = location.Distance(truth[i], fixes[i])
	}

	var (
		es  ErrorStats
		err error
	)

	if es.Mean, err = stats.Mean(errs); err != nil {
		return ErrorStats{}, err
	}
	if es.Median, err = stats.Median(errs); err != nil {
		return ErrorStats{}, err
	}
	if es.P95, err = stats.Percentile(errs, 95); err != nil {
		return ErrorStats{}, err
	}
	if es.Max, err = stats.Max(errs); err != nil {
		return ErrorStats{}, err
	}

	return es, nil
}
