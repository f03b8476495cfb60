// Package stats tests whether the difference between two systems'
// per-topic evaluation scores is statistically meaningful.
package stats

import (
	rankeval "github.com/arclabs561/rank-eval"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

// TTestResult is the outcome of a paired two-tailed t-test.
type TTestResult struct {
	T                float64
	P                float64
	DegreesOfFreedom int
	MeanDiff         float64
	StdErr           float64
	Significant      bool
}

// PairedTTest compares two equal-length series of per-topic scores,
// paired by position, with a two-tailed Student-t test at significance
// level alpha. The p-value comes from the t distribution at n-1
// degrees of freedom, not a normal approximation. A difference series
// with no variance yields t = 0 and p = 1.
func PairedTTest(a, b []float64, alpha float64) (TTestResult, error) {
	if err := checkPaired(a, b); err != nil {
		return TTestResult{}, err
	}
	if err := checkLevel("alpha", alpha); err != nil {
		return TTestResult{}, err
	}
	n := len(a)
	diffs := make([]float64, n)
	for i := range a {
		diffs[i] = a[i] - b[i]
	}
	res := TTestResult{
		DegreesOfFreedom: n - 1,
		MeanDiff:         stat.Mean(diffs, nil),
		StdErr:           stat.StdDev(diffs, nil) / math.Sqrt(float64(n)),
	}
	if res.StdErr == 0 {
		res.P = 1
		return res, nil
	}
	res.T = res.MeanDiff / res.StdErr
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	res.P = 2 * dist.CDF(-math.Abs(res.T))
	res.Significant = res.P < alpha
	return res, nil
}

// ConfidenceInterval is the two-sided Student-t interval for the mean
// of x at the given level, e.g. 0.95.
func ConfidenceInterval(x []float64, level float64) (float64, float64, error) {
	if len(x) < 2 {
		return 0, 0, errors.Wrapf(rankeval.ErrInvalidParameter, "need at least 2 scores, got %d", len(x))
	}
	if err := checkLevel("level", level); err != nil {
		return 0, 0, err
	}
	n := float64(len(x))
	mean := stat.Mean(x, nil)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	critical := dist.Quantile(1 - (1-level)/2)
	margin := critical * stat.StdDev(x, nil) / math.Sqrt(n)
	return mean - margin, mean + margin, nil
}

// CohensD is the standardized effect size between two score series.
// The pooled standard deviation weights each sample variance by its
// degrees of freedom. With no variance at all the effect is 0 for
// equal means and infinite otherwise.
func CohensD(a, b []float64) (float64, error) {
	if err := checkPaired(a, b); err != nil {
		return 0, err
	}
	na, nb := float64(len(a)), float64(len(b))
	diff := stat.Mean(a, nil) - stat.Mean(b, nil)
	pooled := math.Sqrt(((na-1)*stat.Variance(a, nil) + (nb-1)*stat.Variance(b, nil)) / (na + nb - 2))
	if pooled == 0 {
		if diff == 0 {
			return 0, nil
		}
		return math.Inf(int(math.Copysign(1, diff))), nil
	}
	return diff / pooled, nil
}

func checkPaired(a, b []float64) error {
	if len(a) != len(b) {
		return errors.Wrapf(rankeval.ErrInvalidParameter, "paired series must have equal length, got %d and %d", len(a), len(b))
	}
	if len(a) < 2 {
		return errors.Wrapf(rankeval.ErrInvalidParameter, "need at least 2 paired scores, got %d", len(a))
	}
	return nil
}

func checkLevel(name string, value float64) error {
	if math.IsNaN(value) || value <= 0 || value >= 1 {
		return errors.Wrapf(rankeval.ErrInvalidParameter, "%s must be strictly between 0 and 1, got %v", name, value)
	}
	return nil
}
