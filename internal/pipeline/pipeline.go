// Package pipeline joins display names, existence counts, per-unit metadata
// and the monitoring window into renderable unit views.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
)

const DefaultLookback = 24 * time.Hour

type Options struct {
	Lookback  time.Duration
	ChartMode domain.ChartMode
	// LocalTimeWindow shifts the window end by the local zone offset, which
	// is what the monitoring endpoint expects.
	LocalTimeWindow bool
	// Location is used for the window offset and the hour:minute labels.
	Location *time.Location
	// MaxConcurrent bounds the per-unit metadata fan-out; 0 means unbounded.
	MaxConcurrent int
	Now           func() time.Time
}

type Pipeline struct {
	stats domain.StatsRepo
	mon   domain.MonitoringRepo
	opts  Options
	log   logrus.FieldLogger
}

func New(stats domain.StatsRepo, mon domain.MonitoringRepo, opts Options) *Pipeline {
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	if !opts.ChartMode.Valid() {
		opts.ChartMode = domain.ChartValues
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		stats: stats,
		mon:   mon,
		opts:  opts,
		log:   logrus.WithField("component", "pipeline"),
	}
}

// Window computes the monitoring query range ending at now.
func (p *Pipeline) Window(now time.Time) domain.Window {
	end := now.Unix()
	if p.opts.LocalTimeWindow {
		_, offset := now.In(p.opts.Location).Zone()
		end += int64(offset)
	}
	return domain.Window{Start: end - int64(p.opts.Lookback/time.Second), End: end}
}

// Load runs one full load. Any failed request aborts it; there is no partial result.
func (p *Pipeline) Load(ctx context.Context) ([]domain.UnitView, error) {
	w := p.Window(p.opts.Now())
	p.log.Debugf("monitoring window start=%d end=%d", w.Start, w.End)

	var (
		names   domain.DisplayNames
		entries []domain.ExistCountEntry
		samples []domain.MonitoringSample
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if names, err = p.stats.DisplayNames(gctx); err != nil {
			return &FetchError{Source: SourceDisplays, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if entries, err = p.stats.ExistCounts(gctx); err != nil {
			return &FetchError{Source: SourceExistCount, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if samples, err = p.mon.Samples(gctx, w); err != nil {
			return &FetchError{Source: SourceMonitoring, Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return p.Join(ctx, names, entries, samples)
}

// Join correlates already fetched data and fetches each unit's metadata
// concurrently. Output order is the filtered entry order and ID is the
// position in it.
func (p *Pipeline) Join(ctx context.Context, names domain.DisplayNames, entries []domain.ExistCountEntry, samples []domain.MonitoringSample) ([]domain.UnitView, error) {
	kept := make([]domain.ExistCountEntry, 0, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if domain.IsExcluded(e.Key) {
			continue
		}
		id, err := domain.UnitID(e.Key)
		if err != nil {
			return nil, errors.Wrap(err, "existence count entry")
		}
		kept = append(kept, e)
		ids = append(ids, id)
	}

	series := p.groupSamples(samples)
	p.log.Infof("joining %d units (%d excluded), %d samples", len(kept), len(entries)-len(kept), len(samples))

	views := make([]domain.UnitView, len(kept))
	g, gctx := errgroup.WithContext(ctx)
	if p.opts.MaxConcurrent > 0 {
		g.SetLimit(p.opts.MaxConcurrent)
	}
	for i := range kept {
		i := i
		g.Go(func() error {
			meta, err := p.stats.UnitData(gctx, ids[i])
			if err != nil {
				return &FetchError{Source: SourceUnitData, UnitID: ids[i], Err: err}
			}
			views[i] = p.buildView(i, ids[i], kept[i], names, meta, series[ids[i]])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// groupSamples buckets samples by unit id, keeping source order inside each bucket.
func (p *Pipeline) groupSamples(samples []domain.MonitoringSample) map[string][]domain.MonitoringSample {
	out := make(map[string][]domain.MonitoringSample)
	for _, s := range samples {
		id, err := domain.UnitID(s.MetricKey)
		if err != nil {
			p.log.Debugf("skip sample: %v", err)
			continue
		}
		out[id] = append(out[id], s)
	}
	return out
}

func (p *Pipeline) buildView(i int, id string, e domain.ExistCountEntry, names domain.DisplayNames, meta domain.UnitMetadata, samples []domain.MonitoringSample) domain.UnitView {
	display, ok := names[id]
	if !ok {
		p.log.Warnf("no display name for unit %q, using id", id)
		display = id
	}

	labels := make([]string, len(samples))
	datas := make([]domain.ChartDatum, len(samples))
	timed := p.opts.ChartMode == domain.ChartTimed
	for j, s := range samples {
		labels[j] = Label(s.TimestampMillis, p.opts.Location)
		datas[j] = domain.ChartDatum{
			TimestampMillis: s.TimestampMillis,
			Value:           s.Value,
			Null:            s.Null,
			Timed:           timed,
		}
	}

	return domain.UnitView{
		ID:          i,
		Name:        id,
		DisplayName: display,
		Img:         meta.Image,
		Rarity:      meta.Rarity,
		Labels:      labels,
		ChartDatas:  datas,
		Entry:       copyFields(e.Fields),
	}
}

// Label renders a timestamp as unpadded "hour:minute" in loc, e.g. "9:5".
func Label(tsMillis int64, loc *time.Location) string {
	t := time.UnixMilli(tsMillis).In(loc)
	return fmt.Sprintf("%d:%d", t.Hour(), t.Minute())
}

func copyFields(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
