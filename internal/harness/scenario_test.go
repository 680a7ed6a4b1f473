package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/steam/internal/steam"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/steam_cycle.yaml")
	require.NoError(t, err)

	assert.Equal(t, "steam_cycle", sc.Name)
	assert.NotEmpty(t, sc.Description)
	assert.Len(t, sc.States, 8)
	assert.Equal(t, "inlet", sc.States[0].Name)
	assert.Equal(t, map[string]float64{"P": 7350, "x": 0.9}, sc.States[0].Given)
	require.NotNil(t, sc.States[0].Expect)
	assert.Equal(t, "saturated", sc.States[0].Expect.Region)
	assert.Equal(t, 289.15, sc.States[0].Expect.Values["T"])
	assert.Equal(t, steam.ErrCodeInsufficientInput, sc.States[6].Expect.Error)
	assert.Equal(t, DefaultTolerance, sc.tolerance())
	assert.Equal(t, DefaultWorkers, sc.workers())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_ReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: broken\n"), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "states:\n  - name: a\n    given: {P: 100, x: 0}\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "empty states",
			content: "name: empty\nstates: []\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "unknown property",
			content: "name: typo\nstates:\n  - name: a\n    given: {p: 100, x: 0}\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "string value",
			content: "name: str\nstates:\n  - name: a\n    given: {P: high, x: 0}\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "unknown top-level field",
			content: "name: extra\nstate:\n  - name: a\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "bad region",
			content: "name: region\nstates:\n  - name: a\n    given: {P: 100, x: 0}\n    expect: {region: liquid}\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "bad tolerance",
			content: "name: tol\ntolerance: 2\nstates:\n  - name: a\n    given: {P: 100, x: 0}\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "duplicate names",
			content: "name: dup\nstates:\n  - name: a\n    given: {P: 100, x: 0}\n  - name: a\n    given: {P: 200, x: 0}\n",
			wantErr: `duplicate name "a"`,
		},
		{
			name:    "error with values",
			content: "name: mixed\nstates:\n  - name: a\n    given: {s: 7}\n    expect: {error: E_INSUFFICIENT_INPUT, T: 10}\n",
			wantErr: "cannot be combined",
		},
		{
			name:    "malformed yaml",
			content: "name: [unclosed\n",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStateStep_Build(t *testing.T) {
	st := StateStep{Name: "b", Given: map[string]float64{"h": 3051.6, "s": 7.1246}}

	s, err := st.build()
	require.NoError(t, err)
	assert.Equal(t, "b", s.Name)
	assert.Equal(t, 3051.6, s.Enthalpy())
	assert.Equal(t, 7.1246, s.Entropy())
	assert.False(t, s.Known(steam.Pressure))

	c, err := s.Case()
	require.NoError(t, err)
	assert.Equal(t, steam.CaseHS, c)
}
