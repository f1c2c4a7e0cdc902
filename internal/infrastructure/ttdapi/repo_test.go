package ttdapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/rest"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/getTroopDisplays", func(w http.ResponseWriter, r *http.Request) {
		// served as text to check the body is decoded anyway
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`{"Foo":"Foo Unit","Baz":"Baz Unit"}`))
	})
	mux.HandleFunc("/getExistCount", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"key":"Troops:Foo","count":12},{"key":"Crates:Bar","count":1}]`))
	})
	mux.HandleFunc("/getTroopData", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Query().Get("id") {
		case "Foo":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"image":"rbxassetid://1","rarity":"Rare","damage":10}`))
		default:
			http.Error(w, "unknown troop", http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDisplayNames(t *testing.T) {
	r := New(newServer(t).URL, 5*time.Second)
	names, err := r.DisplayNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayNames{"Foo": "Foo Unit", "Baz": "Baz Unit"}, names)
}

func TestExistCounts(t *testing.T) {
	r := New(newServer(t).URL, 5*time.Second)
	entries, err := r.ExistCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Troops:Foo", entries[0].Key)
	assert.Equal(t, float64(12), entries[0].Fields["count"])
	assert.Equal(t, "Crates:Bar", entries[1].Key)
}

func TestUnitData(t *testing.T) {
	r := New(newServer(t).URL, 5*time.Second)
	meta, err := r.UnitData(context.Background(), "Foo")
	require.NoError(t, err)
	assert.Equal(t, domain.UnitMetadata{Image: "rbxassetid://1", Rarity: "Rare"}, meta)
}

func TestUnitDataStatusError(t *testing.T) {
	r := New(newServer(t).URL, 5*time.Second)
	_, err := r.UnitData(context.Background(), "Nope")
	require.Error(t, err)
	var se *rest.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "/getTroopData", se.Endpoint)
	assert.Contains(t, se.Body, "unknown troop")
}

func TestCanceledContext(t *testing.T) {
	r := New(newServer(t).URL, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.ExistCounts(ctx)
	assert.Error(t, err)
}
