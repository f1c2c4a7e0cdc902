package domain

import "context"

// StatsRepo is the game-statistics API.
type StatsRepo interface {
	DisplayNames(ctx context.Context) (DisplayNames, error)
	ExistCounts(ctx context.Context) ([]ExistCountEntry, error)
	UnitData(ctx context.Context, unitID string) (UnitMetadata, error)
}

// MonitoringRepo serves the time-series samples of every unit for a window.
type MonitoringRepo interface {
	Samples(ctx context.Context, w Window) ([]MonitoringSample, error)
}
