package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/olympics_eda/models"
)

const mensBasketball = "Basketball Men's Basketball"

func TestDisciplineDominance(t *testing.T) {
	usa := withNOC("USA")
	basketball := withSport("Basketball", mensBasketball)
	relay := withSport("Swimming", "Swimming Men's 4 x 100 metres Medley Relay")

	records := []models.EnrichedRecord{
		entry(usa, basketball, withYear(1936), withMedal(models.MedalGold)),
		entry(usa, basketball, withYear(1936), withMedal(models.MedalGold)),
		entry(usa, basketball, withYear(1972), withMedal(models.MedalSilver)),
		entry(usa, basketball, withYear(2004), withMedal(models.MedalBronze)),
		entry(usa, basketball, withYear(2004), withMedal(models.MedalGold)),
		entry(usa, basketball, withYear(1992), withMedal(models.MedalGold)),
		entry(usa, basketball, withYear(1980)),
		entry(usa, withSport("Basketball", "Basketball Women's Basketball"), withSex(models.SexFemale),
			withYear(1996), withMedal(models.MedalGold)),
		entry(usa, relay, withYear(2008), withMedal(models.MedalGold)),
		entry(usa, relay, withYear(2012), withMedal(models.MedalGold)),
		entry(withNOC("URS"), basketball, withYear(1972), withMedal(models.MedalGold)),
	}

	res, err := DisciplineDominance(records, "USA", "Basketball", models.SexMale, 3)
	require.NoError(t, err)

	assert.Equal(t, 9, res.Medals)
	assert.Equal(t, Count{Key: mensBasketball, Count: 6}, res.TopEvent)
	assert.Len(t, res.TopEvents, 3)

	assert.Equal(t, []TeamYear{
		{Year: 1936, Event: mensBasketball, Medal: models.MedalGold},
		{Year: 1972, Event: mensBasketball, Medal: models.MedalSilver},
		{Year: 1992, Event: mensBasketball, Medal: models.MedalGold},
		{Year: 2004, Event: mensBasketball, Medal: models.MedalBronze},
	}, res.TeamYears, "one entry per year, first encountered kept")
	assert.Equal(t, 2, res.Golds)
	require.True(t, res.GoldRatio.Valid)
	assert.Equal(t, 0.5, res.GoldRatio.Float64)
}

func TestDisciplineDominanceEmptyTeam(t *testing.T) {
	records := []models.EnrichedRecord{
		entry(withNOC("TUN"), withSport("Athletics", "Athletics Men's 5,000 metres"), withMedal(models.MedalGold)),
	}

	res, err := DisciplineDominance(records, "TUN", "Basketball", models.SexMale, 10)
	require.NoError(t, err)
	assert.Empty(t, res.TeamYears)
	assert.False(t, res.GoldRatio.Valid, "no team years leaves the ratio undefined")

	_, err = DisciplineDominance(records, "USA", "Basketball", models.SexMale, 10)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestDisciplineDominanceEventTie(t *testing.T) {
	records := []models.EnrichedRecord{
		entry(withNOC("USA"), withSport("Rowing", "Rowing Men's Pairs"), withMedal(models.MedalGold)),
		entry(withNOC("USA"), withSport("Archery", "Archery Men's Individual"), withMedal(models.MedalGold)),
	}

	res, err := DisciplineDominance(records, "USA", "Basketball", models.SexMale, 10)
	require.NoError(t, err)
	assert.Equal(t, "Archery Men's Individual", res.TopEvent.Key)
}

func TestDisciplineDominanceBlankEvents(t *testing.T) {
	records := []models.EnrichedRecord{
		entry(withNOC("USA"), withSport("Basketball", ""), withYear(1936), withMedal(models.MedalGold)),
	}

	_, err := DisciplineDominance(records, "USA", "Basketball", models.SexMale, 10)
	assert.ErrorIs(t, err, ErrEmptyResult)
}
