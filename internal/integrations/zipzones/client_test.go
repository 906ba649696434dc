package zipzones

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Default(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)

	tests := []struct {
		zip     string
		want    string
		wantErr error
	}{
		{zip: "10001", want: "manhattan"},
		{zip: "10001-1234", want: "manhattan"},
		{zip: "11201", want: "brooklyn"},
		{zip: "90210", wantErr: ErrUnknownZone},
		{zip: "1000", wantErr: ErrInvalidZipFormat},
		{zip: "10001-12", wantErr: ErrInvalidZipFormat},
		{zip: "abcde", wantErr: ErrInvalidZipFormat},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			got, err := r.ZoneFor(tt.zip)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ExactBeatsPrefix(t *testing.T) {
	r, err := Parse([]byte(`
zones:
  - key: downtown
    prefixes: ["100"]
  - key: airport
    zips: ["10099"]
  - key: midtown
    prefixes: ["1001"]
`))
	require.NoError(t, err)

	zone, err := r.ZoneFor("10099")
	require.NoError(t, err)
	assert.Equal(t, "airport", zone)

	zone, err = r.ZoneFor("10012")
	require.NoError(t, err)
	assert.Equal(t, "midtown", zone)

	zone, err = r.ZoneFor("10050")
	require.NoError(t, err)
	assert.Equal(t, "downtown", zone)
}

func TestParse_Conflicts(t *testing.T) {
	_, err := Parse([]byte(`
zones:
  - key: a
    prefixes: ["100"]
  - key: b
    prefixes: ["100"]
`))
	assert.ErrorIs(t, err, ErrLoad)

	_, err = Parse([]byte(`zones: [{key: "", prefixes: ["1"]}]`))
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zones:\n  - key: local\n    zips: [\"02139\"]\n"), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	zone, err := r.ZoneFor("02139")
	require.NoError(t, err)
	assert.Equal(t, "local", zone)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoad)
}
