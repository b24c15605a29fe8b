package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/olympics_eda/models"
)

func TestPhysicalTraits(t *testing.T) {
	gym := withSport("Gymnastics", "Gymnastics Women's Individual All-Around")
	records := []models.EnrichedRecord{
		entry(gym, withYear(1976), withSex(models.SexFemale), withHeight(150), withWeight(40)),
		entry(gym, withYear(1976), withSex(models.SexFemale), withHeight(160)),
		entry(gym, withYear(1976), withHeight(170), withWeight(65)),
		entry(gym, withYear(2016), withSex(models.SexFemale), withHeight(145), withWeight(38)),
		entry(gym, withYear(2016)),
		entry(withSport("Rowing", "Rowing Men's Eights"), withYear(2016), withHeight(195), withWeight(95)),
	}

	res, err := PhysicalTraits(records, "Gymnastics")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Entries)

	assert.Equal(t, []GroupValues{
		{Year: 1976, Group: models.SexFemale, Values: []float64{150, 160}},
		{Year: 1976, Group: models.SexMale, Values: []float64{170}},
		{Year: 2016, Group: models.SexFemale, Values: []float64{145}},
	}, res.Feature(FeatureHeight))

	assert.Equal(t, []GroupValues{
		{Year: 1976, Group: models.SexFemale, Values: []float64{40}},
		{Year: 1976, Group: models.SexMale, Values: []float64{65}},
		{Year: 2016, Group: models.SexFemale, Values: []float64{38}},
	}, res.Feature(FeatureWeight))
}

func TestPhysicalTraitsUnknownSport(t *testing.T) {
	_, err := PhysicalTraits([]models.EnrichedRecord{entry()}, "Quidditch")
	assert.ErrorIs(t, err, ErrEmptyResult)
}
