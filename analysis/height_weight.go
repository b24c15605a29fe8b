package analysis

import (
	"database/sql"

	"github.com/nonsonwune/olympics_eda/models"
)

// Point is one medalist in weight/height space.
type Point struct {
	Weight float64
	Height float64
}

// BMI returns weight / (height/100)².
func (p Point) BMI() float64 {
	m := p.Height / 100
	return p.Weight / (m * m)
}

// Imputation counts how a feature's missing values were filled.
type Imputation struct {
	Missing int
	// Filled were replaced by their event median.
	Filled int
	// Unfilled stay missing because the event has no known value.
	Unfilled int
}

// HeightWeightResult relates height and weight of medalists before and
// after removing BMI outliers.
type HeightWeightResult struct {
	Medalists int
	Height    Imputation
	Weight    Imputation

	// All holds every medalist with both features known after imputation.
	All         []Point
	Correlation sql.NullFloat64

	Bounds   OutlierBounds
	Outliers int

	Clean            []Point
	CleanCorrelation sql.NullFloat64
}

// HeightWeight imputes missing heights and weights of medalists with the
// median of their event, correlates the two, then repeats the correlation
// without the BMI outliers.
func HeightWeight(records []models.EnrichedRecord) (HeightWeightResult, error) {
	medals := filter(records, func(r models.EnrichedRecord) bool { return r.Medal.Valid })
	if len(medals) == 0 {
		return HeightWeightResult{}, emptyResult("no medal entries")
	}

	heights, hImp := imputeByEvent(medals, FeatureHeight)
	weights, wImp := imputeByEvent(medals, FeatureWeight)

	res := HeightWeightResult{
		Medalists: len(medals),
		Height:    hImp,
		Weight:    wImp,
	}
	for i := range medals {
		if !heights[i].Valid || !weights[i].Valid || heights[i].Float64 <= 0 {
			continue
		}
		res.All = append(res.All, Point{Weight: weights[i].Float64, Height: heights[i].Float64})
	}
	if len(res.All) == 0 {
		return HeightWeightResult{}, emptyResult("no medalist with both height and weight")
	}
	res.Correlation = nullable(correlate(res.All))

	bmi := make([]float64, len(res.All))
	for i, p := range res.All {
		bmi[i] = p.BMI()
	}
	bounds, err := IQRBounds(bmi)
	if err != nil {
		return HeightWeightResult{}, err
	}
	res.Bounds = bounds

	for i, p := range res.All {
		if bounds.IsOutlier(bmi[i]) {
			res.Outliers++
			continue
		}
		res.Clean = append(res.Clean, p)
	}
	res.CleanCorrelation = nullable(correlate(res.Clean))
	return res, nil
}

func correlate(points []Point) (float64, error) {
	hs := make([]float64, len(points))
	ws := make([]float64, len(points))
	for i, p := range points {
		hs[i] = p.Height
		ws[i] = p.Weight
	}
	return Pearson(hs, ws)
}

// imputeByEvent returns the feature for each record with missing values
// replaced by the median of the record's event. The medians are computed
// once per event.
func imputeByEvent(records []models.EnrichedRecord, feature Feature) ([]sql.NullFloat64, Imputation) {
	byEvent := make(map[string][]float64)
	for _, r := range records {
		if v := feature.Value(r); v.Valid {
			byEvent[r.Event] = append(byEvent[r.Event], v.Float64)
		}
	}
	medians := make(map[string]float64, len(byEvent))
	for event, vs := range byEvent {
		m, err := Median(vs)
		if err == nil {
			medians[event] = m
		}
	}

	var imp Imputation
	out := make([]sql.NullFloat64, len(records))
	for i, r := range records {
		v := feature.Value(r)
		if v.Valid {
			out[i] = v
			continue
		}
		imp.Missing++
		if m, ok := medians[r.Event]; ok {
			out[i] = sql.NullFloat64{Float64: m, Valid: true}
			imp.Filled++
		} else {
			imp.Unfilled++
		}
	}
	return out, imp
}
