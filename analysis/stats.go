package analysis

import (
	"database/sql"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// IQRMultiplier scales the interquartile range into outlier fences.
const IQRMultiplier = 1.5

// Quantile returns the p-quantile of xs by linear interpolation between
// the order statistics at position (n-1)p. xs is not modified.
func Quantile(xs []float64, p float64) (float64, error) {
	if len(xs) == 0 {
		return 0, emptyResult("quantile of empty sample")
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p), nil
}

func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if p <= 0 || n == 1 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// Median is the 0.5 quantile.
func Median(xs []float64) (float64, error) {
	return Quantile(xs, 0.5)
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, emptyResult("mean of empty sample")
	}
	return stat.Mean(xs, nil), nil
}

// StdDev returns the sample standard deviation, undefined below two values.
func StdDev(xs []float64) sql.NullFloat64 {
	if len(xs) < 2 {
		return sql.NullFloat64{}
	}
	return finite(stats.StdDev(xs))
}

// Bounds returns the minimum and maximum of xs.
func Bounds(xs []float64) (lo, hi float64, err error) {
	if len(xs) == 0 {
		return 0, 0, emptyResult("bounds of empty sample")
	}
	lo, hi = stats.Bounds(xs)
	return lo, hi, nil
}

// Pearson returns the Pearson correlation coefficient of xs and ys.
// It is undefined for fewer than two pairs or a constant series.
func Pearson(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, undefined("correlation of series with %d and %d values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return 0, undefined("correlation needs at least two pairs, have %d", len(xs))
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, undefined("correlation of constant series")
	}
	return r, nil
}

// Ratio divides two counts.
func Ratio(num, den int) (float64, error) {
	if den == 0 {
		return 0, undefined("ratio %d/0", num)
	}
	return float64(num) / float64(den), nil
}

// OutlierBounds are the interquartile fences of a sample.
type OutlierBounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// IQRBounds computes Q1, Q3 and the fences [Q1-1.5·IQR, Q3+1.5·IQR].
func IQRBounds(xs []float64) (OutlierBounds, error) {
	if len(xs) == 0 {
		return OutlierBounds{}, emptyResult("quartiles of empty sample")
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	q1 := quantileSorted(sorted, 0.25)
	q3 := quantileSorted(sorted, 0.75)
	iqr := q3 - q1
	return OutlierBounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - IQRMultiplier*iqr,
		Upper: q3 + IQRMultiplier*iqr,
	}, nil
}

// IsOutlier reports whether v lies strictly outside the fences.
func (b OutlierBounds) IsOutlier(v float64) bool {
	return v < b.Lower || v > b.Upper
}

// nullable turns a (value, error) pair into an optional value.
func nullable(v float64, err error) sql.NullFloat64 {
	if err != nil {
		return sql.NullFloat64{}
	}
	return finite(v)
}

func finite(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
