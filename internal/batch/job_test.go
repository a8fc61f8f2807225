package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsurf/internal/synth"
)

func expectedJob() *Job {
	return &Job{
		Parallelism: 2,
		Requests: []Request{
			{Name: "d3-plain", Distance: 3},
			{Name: "d3-logical-x", Distance: 3, Logical: []string{"X"}},
			{
				Name:     "d5-legacy",
				Distance: 5,
				Logical:  []string{"z"},
				Compat:   synth.Compat{KindDispatch: true, ZStrideToRegister: true},
			},
		},
	}
}

func TestLoad_YAML(t *testing.T) {
	job, err := Load(filepath.Join("testdata", "job.yaml"))
	require.NoError(t, err)
	assert.Equal(t, expectedJob(), job)
}

func TestLoad_CUE(t *testing.T) {
	job, err := Load(filepath.Join("testdata", "job.cue"))
	require.NoError(t, err)
	assert.Equal(t, expectedJob(), job)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.True(t, errors.Is(err, ErrInvalidJob))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrInvalidJob)
}

func TestParseYAML_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"even distance", "requests:\n  - distance: 4\n"},
		{"small distance", "requests:\n  - distance: 1\n"},
		{"bad axis", "requests:\n  - distance: 3\n    logical: [Y]\n"},
		{"no requests", "parallelism: 1\n"},
		{"unknown field", "requests:\n  - distance: 3\n    distanse: 5\n"},
		{"parallelism too high", "parallelism: 100\nrequests:\n  - distance: 3\n"},
		{"not yaml", "requests: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidJob)
		})
	}
}

func TestParseCUE_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"below minimum", `requests: [{distance: 1}]`},
		{"even distance", `requests: [{distance: 6}]`},
		{"bad axis", `requests: [{distance: 3, logical: ["Y"]}]`},
		{"closed request", `requests: [{distance: 3, colour: "red"}]`},
		{"empty requests", `requests: []`},
		{"syntax error", `requests: [`},
		{"non concrete", `requests: [{distance: int}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCUE("job.cue", []byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidJob)
		})
	}
}

func TestRequestLabel(t *testing.T) {
	assert.Equal(t, "named", Request{Name: "named", Distance: 3}.Label())
	assert.Equal(t, "d7", Request{Distance: 7}.Label())
}
