package monitoring

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/rest"
)

const DefaultURL = "https://ssh.server.bekaert.fr:1030/monitoring_data"

// Repo queries the monitoring endpoint; url is the full endpoint, not a base.
type Repo struct {
	client *resty.Client
	url    string
}

func New(url string, timeout time.Duration) *Repo {
	if url == "" {
		url = DefaultURL
	}
	return &Repo{client: rest.NewClient(rest.Config{Timeout: timeout}), url: url}
}

func (r *Repo) Samples(ctx context.Context, w domain.Window) ([]domain.MonitoringSample, error) {
	params := map[string]string{
		"start_time": strconv.FormatInt(w.Start, 10),
		"end_time":   strconv.FormatInt(w.End, 10),
	}
	var out []domain.MonitoringSample
	if err := rest.GetJSON(ctx, r.client, r.url, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
