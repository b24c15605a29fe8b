package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/olympics_eda/models"
)

func TestHeightWeight(t *testing.T) {
	sprint := withSport("Athletics", "Athletics Men's 100 metres")
	records := []models.EnrichedRecord{
		entry(sprint, withMedal(models.MedalGold), withWeight(60), withHeight(170)),
		entry(sprint, withMedal(models.MedalSilver), withWeight(65), withHeight(175)),
		entry(sprint, withMedal(models.MedalBronze), withWeight(70), withHeight(180)),
		entry(sprint, withMedal(models.MedalGold), withWeight(75), withHeight(185)),
		// Height filled with the event median (177.5).
		entry(sprint, withMedal(models.MedalSilver), withWeight(68)),
		// Only entry of its event: nothing to impute from.
		entry(withSport("Polo", "Polo Men's Polo"), withMedal(models.MedalGold)),
		// BMI ~88.9, far outside the fences.
		entry(withSport("Weightlifting", "Weightlifting Men's Super-Heavyweight"),
			withMedal(models.MedalGold), withWeight(200), withHeight(150)),
		// Not a medalist.
		entry(sprint, withWeight(500), withHeight(100)),
	}

	res, err := HeightWeight(records)
	require.NoError(t, err)

	assert.Equal(t, 7, res.Medalists)
	assert.Equal(t, Imputation{Missing: 2, Filled: 1, Unfilled: 1}, res.Height)
	assert.Equal(t, Imputation{Missing: 1, Filled: 0, Unfilled: 1}, res.Weight)

	require.Len(t, res.All, 6)
	assert.Contains(t, res.All, Point{Weight: 68, Height: 177.5})

	assert.InDelta(t, 21.314, res.Bounds.Q1, 1e-3)
	assert.InDelta(t, 21.837, res.Bounds.Q3, 1e-3)
	assert.Equal(t, 1, res.Outliers)
	require.Len(t, res.Clean, 5)
	assert.NotContains(t, res.Clean, Point{Weight: 200, Height: 150})

	require.True(t, res.Correlation.Valid)
	require.True(t, res.CleanCorrelation.Valid)
	assert.Greater(t, res.CleanCorrelation.Float64, 0.9)
	assert.Greater(t, res.CleanCorrelation.Float64, res.Correlation.Float64)
}

func TestHeightWeightSinglePair(t *testing.T) {
	records := []models.EnrichedRecord{
		entry(withMedal(models.MedalGold), withWeight(70), withHeight(180)),
	}

	res, err := HeightWeight(records)
	require.NoError(t, err)
	assert.Len(t, res.All, 1)
	assert.False(t, res.Correlation.Valid, "one pair has no correlation")
	assert.Equal(t, 0, res.Outliers)
}

func TestHeightWeightNoPairs(t *testing.T) {
	_, err := HeightWeight([]models.EnrichedRecord{entry(withMedal(models.MedalGold), withWeight(70))})
	assert.ErrorIs(t, err, ErrEmptyResult)

	_, err = HeightWeight([]models.EnrichedRecord{entry(withWeight(70), withHeight(180))})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestPointBMI(t *testing.T) {
	assert.InDelta(t, 22.857, Point{Weight: 70, Height: 175}.BMI(), 1e-3)
}
