package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
)

// Repo serves a synthetic catalogue for -mock runs. It implements both
// domain.StatsRepo and domain.MonitoringRepo.
type Repo struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	units []unit
	step  time.Duration
}

type unit struct {
	id, display, rarity string
	base                float64
}

func New() *Repo {
	return NewSeeded(time.Now().UnixNano())
}

func NewSeeded(seed int64) *Repo {
	return &Repo{
		rnd:  rand.New(rand.NewSource(seed)),
		step: 15 * time.Minute,
		units: []unit{
			{"Cameraman", "Cameraman", "Basic", 180000},
			{"LargeCameraman", "Large Cameraman", "Uncommon", 95000},
			{"TVMan", "TV Man", "Rare", 40000},
			{"SpeakerMan", "Speakerman", "Rare", 52000},
			{"LargeSpeakerman", "Large Speakerman", "Epic", 14000},
			{"TitanCameraman", "Titan Cameraman", "Legendary", 3200},
			{"TitanSpeakerman", "Titan Speakerman", "Legendary", 2900},
			{"TitanTVMan", "Titan TV Man", "Mythic", 800},
			{"UpgradedTitanCameraman", "Upgraded Titan Cameraman", "Godly", 150},
			{"ScientistCameraman", "Scientist Cameraman", "Epic", 9100},
			{"PlungerCameraman", "Plunger Cameraman", "Uncommon", 60500},
			{"DJTVMan", "DJ TV Man", "Mythic", 640},
		},
	}
}

func (r *Repo) DisplayNames(ctx context.Context) (domain.DisplayNames, error) {
	out := make(domain.DisplayNames, len(r.units))
	for _, u := range r.units {
		out[u.id] = u.display
	}
	return out, nil
}

func (r *Repo) ExistCounts(ctx context.Context) ([]domain.ExistCountEntry, error) {
	out := make([]domain.ExistCountEntry, 0, len(r.units)+2)
	for i, u := range r.units {
		out = append(out, domain.ExistCountEntry{
			Key:    "Troops:" + u.id,
			Fields: map[string]any{"count": float64(int(u.base))},
		})
		// crates interleaved like the live list
		if i%5 == 0 {
			out = append(out, domain.ExistCountEntry{Key: fmt.Sprintf("Crates:Crate%d", i), Fields: map[string]any{"count": float64(1000 + i)}})
		}
	}
	return out, nil
}

func (r *Repo) UnitData(ctx context.Context, unitID string) (domain.UnitMetadata, error) {
	for _, u := range r.units {
		if u.id == unitID {
			return domain.UnitMetadata{Image: "rbxassetid://" + unitID, Rarity: u.rarity}, nil
		}
	}
	return domain.UnitMetadata{}, fmt.Errorf("mock: unknown unit %q", unitID)
}

// Samples walks each unit's count from its base across the window, one
// sample per step.
func (r *Repo) Samples(ctx context.Context, w domain.Window) ([]domain.MonitoringSample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.MonitoringSample
	start := time.Unix(w.Start, 0)
	end := time.Unix(w.End, 0)
	for i, u := range r.units {
		v := u.base
		for ts := start; !ts.After(end); ts = ts.Add(r.step) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v += (r.rnd.Float64() - 0.45) * u.base * 0.01
			if v < 0 {
				v = 0
			}
			out = append(out, domain.MonitoringSample{
				SeriesID:        fmt.Sprintf("%d", i),
				MetricKey:       "Metric:" + u.id,
				TimestampMillis: ts.UnixMilli(),
				Value:           float64(int64(v)),
			})
		}
	}
	return out, nil
}
