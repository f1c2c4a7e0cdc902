// Package ttdapi reads unit names, existence counts and unit metadata from
// the game statistics API.
package ttdapi

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/rest"
)

const (
	DefaultBaseURL = "https://api.toilettowerdefense.com"

	pathDisplays   = "/getTroopDisplays"
	pathExistCount = "/getExistCount"
	pathTroopData  = "/getTroopData"
)

type Repo struct {
	client *resty.Client
}

func New(baseURL string, timeout time.Duration) *Repo {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Repo{client: rest.NewClient(rest.Config{BaseURL: baseURL, Timeout: timeout})}
}

func (r *Repo) DisplayNames(ctx context.Context) (domain.DisplayNames, error) {
	var out domain.DisplayNames
	if err := rest.GetJSON(ctx, r.client, pathDisplays, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = domain.DisplayNames{}
	}
	return out, nil
}

func (r *Repo) ExistCounts(ctx context.Context) ([]domain.ExistCountEntry, error) {
	var out []domain.ExistCountEntry
	if err := rest.GetJSON(ctx, r.client, pathExistCount, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UnitData(ctx context.Context, unitID string) (domain.UnitMetadata, error) {
	var out domain.UnitMetadata
	err := rest.GetJSON(ctx, r.client, pathTroopData, map[string]string{"id": unitID}, &out)
	return out, err
}
