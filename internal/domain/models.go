package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// DisplayNames maps a unit id to its human readable name.
type DisplayNames map[string]string

// ExistCountEntry is one row of the existence-count list. Key has the form
// "<prefix>:<unitId>"; every other field of the row is kept in Fields.
type ExistCountEntry struct {
	Key    string
	Fields map[string]any
}

func (e *ExistCountEntry) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	key, _ := raw["key"].(string)
	delete(raw, "key")
	e.Key = key
	e.Fields = raw
	return nil
}

func (e ExistCountEntry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	out["key"] = e.Key
	return json.Marshal(out)
}

type UnitMetadata struct {
	Image  string `json:"image"`
	Rarity string `json:"rarity"`
}

// MonitoringSample is one [seriesId, metricKey, timestampMillis, value] tuple.
type MonitoringSample struct {
	SeriesID        string
	MetricKey       string
	TimestampMillis int64
	Value           float64
	Null            bool // value was null upstream
}

func (s *MonitoringSample) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return err
	}
	if len(tuple) != 4 {
		return &SampleError{Raw: string(b)}
	}

	// series ids show up both as numbers and strings
	var sid any
	if err := json.Unmarshal(tuple[0], &sid); err != nil {
		return err
	}
	switch v := sid.(type) {
	case string:
		s.SeriesID = v
	case nil:
		s.SeriesID = ""
	default:
		s.SeriesID = strings.TrimSpace(string(tuple[0]))
	}

	if err := json.Unmarshal(tuple[1], &s.MetricKey); err != nil {
		return err
	}
	var ts json.Number
	if err := json.Unmarshal(tuple[2], &ts); err != nil {
		return err
	}
	f, err := ts.Float64()
	if err != nil {
		return err
	}
	s.TimestampMillis = int64(f)

	var v *float64
	if err := json.Unmarshal(tuple[3], &v); err != nil {
		return err
	}
	if v == nil {
		s.Null = true
		s.Value = 0
	} else {
		s.Null = false
		s.Value = *v
	}
	return nil
}

func (s MonitoringSample) Time() time.Time { return time.UnixMilli(s.TimestampMillis) }

// ChartMode selects the shape of UnitView.ChartDatas.
type ChartMode string

const (
	ChartValues ChartMode = "values" // raw values, point x axis
	ChartTimed  ChartMode = "timed"  // (timestampMillis, value) pairs, time x axis
)

func (m ChartMode) Valid() bool { return m == ChartValues || m == ChartTimed }

// ChartDatum is one chart point. Timed controls the JSON shape only; the
// timestamp is always carried so renderers can draw a time axis.
type ChartDatum struct {
	TimestampMillis int64
	Value           float64
	Null            bool
	Timed           bool
}

func (d ChartDatum) MarshalJSON() ([]byte, error) {
	var v any = d.Value
	if d.Null {
		v = nil
	}
	if d.Timed {
		return json.Marshal([]any{d.TimestampMillis, v})
	}
	return json.Marshal(v)
}

// UnitView is the renderable record for one unit. Labels and ChartDatas are
// parallel and keep the source order of the monitoring samples.
type UnitView struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Img         string         `json:"img"`
	Rarity      string         `json:"rarity"`
	Labels      []string       `json:"labels"`
	ChartDatas  []ChartDatum   `json:"chartDatas"`
	Entry       map[string]any `json:"entry,omitempty"`
}

// Values returns the chart values, nulls as zero.
func (u UnitView) Values() []float64 {
	out := make([]float64, len(u.ChartDatas))
	for i, d := range u.ChartDatas {
		out[i] = d.Value
	}
	return out
}

// ImageURL joins the thumbnail base and the image reference as-is.
func (u UnitView) ImageURL(thumbnailBase string) string {
	if u.Img == "" {
		return ""
	}
	return thumbnailBase + u.Img
}

// Window is a monitoring query range in epoch seconds.
type Window struct {
	Start int64
	End   int64
}
