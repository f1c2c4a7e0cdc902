package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    UnitKey
		wantErr bool
	}{
		{raw: "Troops:Foo", want: UnitKey{Prefix: "Troops", ID: "Foo"}},
		{raw: "Metric:Foo", want: UnitKey{Prefix: "Metric", ID: "Foo"}},
		{raw: "Troops:Camera:Man", want: UnitKey{Prefix: "Troops", ID: "Camera:Man"}},
		{raw: "Troops:", wantErr: true},
		{raw: ":Foo", wantErr: true},
		{raw: "Foo", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseUnitKey(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedKey))
				var ke *KeyError
				require.True(t, errors.As(err, &ke))
				assert.Equal(t, tt.raw, ke.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw, got.String())
		})
	}
}

func TestUnitIDMatchesSevenCharPrefix(t *testing.T) {
	for _, raw := range []string{"Troops:Foo", "Crates:Bar", "Metric:Baz", "Troops:Large Cameraman"} {
		id, err := UnitID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw[7:], id)
	}
}

func TestIsExcluded(t *testing.T) {
	assert.True(t, IsExcluded("Crates:Bar"))
	assert.False(t, IsExcluded("Troops:Crates"))
	assert.False(t, IsExcluded("CratesBar"))
	assert.False(t, IsExcluded("crates:Bar"))
}
