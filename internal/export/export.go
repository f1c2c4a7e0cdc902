// Package export writes loaded units outside the TUI: a JSON dump and one
// PNG line chart per unit.
package export

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
)

// WriteJSON encodes units as an indented JSON array.
func WriteJSON(w io.Writer, units []domain.UnitView) error {
	if units == nil {
		units = []domain.UnitView{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(units), "encode units")
}

type PNGOptions struct {
	Width, Height int
	Location      *time.Location
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// WritePNGs renders a chart per unit into dir and returns the written paths.
// Units with fewer than two samples have no line to draw and are skipped.
func WritePNGs(dir string, units []domain.UnitView, opts PNGOptions) ([]string, error) {
	if opts.Width <= 0 {
		opts.Width = 700
	}
	if opts.Height <= 0 {
		opts.Height = 300
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create png dir")
	}

	var written []string
	for _, u := range units {
		if len(u.ChartDatas) < 2 {
			logrus.Debugf("png: skip %s, %d samples", u.Name, len(u.ChartDatas))
			continue
		}
		path := filepath.Join(dir, unsafeName.ReplaceAllString(u.Name, "_")+".png")
		if err := writePNG(path, u, opts); err != nil {
			return written, errors.Wrapf(err, "render %s", u.Name)
		}
		written = append(written, path)
	}
	return written, nil
}

func writePNG(path string, u domain.UnitView, opts PNGOptions) error {
	xs := make([]float64, len(u.ChartDatas))
	ys := make([]float64, len(u.ChartDatas))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, d := range u.ChartDatas {
		xs[i] = float64(d.TimestampMillis)
		ys[i] = d.Value
		lo = math.Min(lo, d.Value)
		hi = math.Max(hi, d.Value)
	}
	// go-chart refuses a zero-height range
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(1, math.Abs(hi)*0.1)
	}
	if xs[0] == xs[len(xs)-1] {
		xs[len(xs)-1]++
	}

	loc := opts.Location
	graph := chart.Chart{
		Title:  u.DisplayName,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					t := time.UnixMilli(int64(f)).In(loc)
					return t.Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    u.DisplayName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("1976D2"),
					StrokeWidth: 2,
				},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
