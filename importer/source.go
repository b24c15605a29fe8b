package importer

import (
	"context"
	"fmt"

	"github.com/nonsonwune/olympics_eda/models"
)

// Source provides the two raw tables.
type Source interface {
	AthleteEvents(ctx context.Context) ([]models.AthleteEvent, error)
	Regions(ctx context.Context) ([]models.Region, error)
}

// Load reads both tables from src and joins them.
func Load(ctx context.Context, src Source) ([]models.EnrichedRecord, error) {
	events, err := src.AthleteEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading athlete events: %w", err)
	}
	regions, err := src.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading regions: %w", err)
	}
	return Join(events, regions), nil
}

// LoadFiles reads and joins the two delimited files.
func LoadFiles(ctx context.Context, athleteEventsPath, regionsPath string) ([]models.EnrichedRecord, error) {
	return Load(ctx, NewFileSource(athleteEventsPath, regionsPath))
}
