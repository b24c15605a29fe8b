package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/olympics_eda/models"
)

func TestRegionDeepDive(t *testing.T) {
	tunisia := withRegion("Tunisia")
	records := []models.EnrichedRecord{
		entry(tunisia, withYear(1968), withAge(22), withMedal(models.MedalGold)),
		entry(tunisia, withYear(1968), withAge(30)),
		entry(tunisia, withYear(2012), withAge(19), withMedal(models.MedalBronze)),
		entry(tunisia, withYear(2012)),
		entry(withRegion("Morocco"), withYear(2012), withAge(25), withMedal(models.MedalGold)),
		entry(withYear(2012), withAge(25)),
	}

	res, err := RegionDeepDive(records, "Tunisia")
	require.NoError(t, err)

	assert.Equal(t, 4, res.Entries)
	require.Len(t, res.Medalists, 2)
	assert.Equal(t, 1968, res.Medalists[0].Year)
	assert.Equal(t, 0.5, res.MedalRatio)

	assert.Equal(t, []GroupValues{
		{Year: 1968, Values: []float64{22, 30}},
		{Year: 2012, Values: []float64{19}},
	}, res.AgeByYear)
}

func TestRegionDeepDiveUnknownRegion(t *testing.T) {
	records := []models.EnrichedRecord{entry(withRegion("Tunisia"))}

	_, err := RegionDeepDive(records, "Atlantis")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestRegionDeepDiveNoMedals(t *testing.T) {
	res, err := RegionDeepDive([]models.EnrichedRecord{entry(withRegion("Tunisia"))}, "Tunisia")
	require.NoError(t, err)
	assert.Empty(t, res.Medalists)
	assert.Zero(t, res.MedalRatio)
}
