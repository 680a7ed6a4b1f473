package tables

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniSat = `T(C)	P(bar)	hf	hg	sf	sg	vf	vg
100	1.0142	419.17	2675.6	1.3072	7.3541	0.001043	1.6720
120	1.9867	503.81	2705.9	1.5279	7.1292	0.001060	0.89121
140	3.6154	589.16	2733.5	1.7392	6.9294	0.001080	0.50850
`

const miniSuper = `T(C)	h	s	P(bar)
150	2776.6	7.6148	1
200	2875.5	7.8356	1
250	2974.5	8.0346	1
200	2860.4	7.5081	3
`

// ===== Parse =====

func TestParse_ConvertsBarToKPa(t *testing.T) {
	tb, err := Parse(strings.NewReader(miniSat), strings.NewReader(miniSuper))
	require.NoError(t, err)

	sat := tb.Saturation()
	require.Len(t, sat, 3)
	assert.InDelta(t, 101.42, sat[0].P, 1e-9)
	assert.Equal(t, 419.17, sat[0].Hf)
	assert.Equal(t, 0.89121, sat[1].Vg)

	super := tb.Superheated()
	require.Len(t, super, 4)
	assert.InDelta(t, 300.0, super[3].P, 1e-9)
	assert.Equal(t, 2860.4, super[3].H)
}

func TestParse_DerivesSuperheatedVolume(t *testing.T) {
	tb, err := Parse(strings.NewReader(miniSat), strings.NewReader(miniSuper))
	require.NoError(t, err)

	row := tb.Superheated()[1]
	assert.InDelta(t, IdealGasVolume(200, 100), row.V, 1e-12)
	assert.InDelta(t, 8.314/18*473/100, row.V, 1e-12)
}

func TestParse_SkipsCommentsAndBlankLines(t *testing.T) {
	sat := "# generated\n\n" + miniSat + "\n\n"
	_, err := Parse(strings.NewReader(sat), strings.NewReader(miniSuper))
	require.NoError(t, err)
}

func TestParse_ColumnCountMismatch(t *testing.T) {
	bad := miniSat + "160 6.1823 675.47\n"
	_, err := Parse(strings.NewReader(bad), strings.NewReader(miniSuper))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "saturation", pe.Table)
	assert.Equal(t, 5, pe.Line)
	assert.Contains(t, pe.Msg, "expected 8 columns")
}

func TestParse_NonNumericField(t *testing.T) {
	bad := miniSuper + "300 abc 8.0 1\n"
	_, err := Parse(strings.NewReader(miniSat), strings.NewReader(bad))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "superheated", pe.Table)
	assert.Contains(t, pe.Msg, `"abc"`)
}

func TestParse_EmptyTable(t *testing.T) {
	_, err := Parse(strings.NewReader("T P\n"), strings.NewReader(miniSuper))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "no data rows", pe.Msg)
}

// ===== New =====

func TestNew_RejectsNonIncreasingTemperature(t *testing.T) {
	sat := []SatSample{
		{T: 100, P: 101, Hf: 419, Hg: 2675, Sf: 1.3, Sg: 7.3, Vf: 0.001, Vg: 1.6},
		{T: 100, P: 198, Hf: 503, Hg: 2705, Sf: 1.5, Sg: 7.1, Vf: 0.001, Vg: 0.9},
	}
	_, err := New(sat, threeSuper())
	require.ErrorIs(t, err, ErrInvalidTable)
	assert.Contains(t, err.Error(), "temperature not increasing")
}

func TestNew_RejectsNonIncreasingPressure(t *testing.T) {
	sat := []SatSample{
		{T: 100, P: 198, Hf: 419, Hg: 2675, Sf: 1.3, Sg: 7.3, Vf: 0.001, Vg: 1.6},
		{T: 120, P: 101, Hf: 503, Hg: 2705, Sf: 1.5, Sg: 7.1, Vf: 0.001, Vg: 0.9},
	}
	_, err := New(sat, threeSuper())
	require.ErrorIs(t, err, ErrInvalidTable)
	assert.Contains(t, err.Error(), "pressure not increasing")
}

func TestNew_RejectsInvertedPhaseValues(t *testing.T) {
	sat := []SatSample{
		{T: 100, P: 101, Hf: 2675, Hg: 419, Sf: 1.3, Sg: 7.3, Vf: 0.001, Vg: 1.6},
		{T: 120, P: 198, Hf: 503, Hg: 2705, Sf: 1.5, Sg: 7.1, Vf: 0.001, Vg: 0.9},
	}
	_, err := New(sat, threeSuper())
	require.ErrorIs(t, err, ErrInvalidTable)
}

func TestNew_RejectsShortTables(t *testing.T) {
	_, err := New(nil, threeSuper())
	require.ErrorIs(t, err, ErrInvalidTable)

	sat := []SatSample{
		{T: 100, P: 101, Hf: 419, Hg: 2675, Sf: 1.3, Sg: 7.3, Vf: 0.001, Vg: 1.6},
		{T: 120, P: 198, Hf: 503, Hg: 2705, Sf: 1.5, Sg: 7.1, Vf: 0.001, Vg: 0.9},
	}
	_, err = New(sat, threeSuper()[:2])
	require.ErrorIs(t, err, ErrInvalidTable)
}

func TestNew_CopiesInput(t *testing.T) {
	sat := []SatSample{
		{T: 100, P: 101, Hf: 419, Hg: 2675, Sf: 1.3, Sg: 7.3, Vf: 0.001, Vg: 1.6},
		{T: 120, P: 198, Hf: 503, Hg: 2705, Sf: 1.5, Sg: 7.1, Vf: 0.001, Vg: 0.9},
	}
	tb, err := New(sat, threeSuper())
	require.NoError(t, err)

	sat[0].T = -1
	assert.Equal(t, 100.0, tb.Saturation()[0].T)

	out := tb.Saturation()
	out[0].T = -2
	assert.Equal(t, 100.0, tb.Saturation()[0].T)
}

func threeSuper() []SuperSample {
	return []SuperSample{
		{T: 150, P: 100, H: 2776, S: 7.61},
		{T: 200, P: 100, H: 2875, S: 7.83},
		{T: 200, P: 300, H: 2860, S: 7.50},
	}
}

// ===== LoadFiles =====

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	satPath := filepath.Join(dir, "sat.txt")
	superPath := filepath.Join(dir, "super.txt")
	require.NoError(t, os.WriteFile(satPath, []byte(miniSat), 0o644))
	require.NoError(t, os.WriteFile(superPath, []byte(miniSuper), 0o644))

	tb, err := LoadFiles(satPath, superPath)
	require.NoError(t, err)
	assert.Len(t, tb.Saturation(), 3)
}

func TestLoadFiles_MissingFile(t *testing.T) {
	_, err := LoadFiles(filepath.Join(t.TempDir(), "nope.txt"), "also-missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// ===== Default =====

func TestDefault_EmbeddedData(t *testing.T) {
	tb := Default()
	require.NotNil(t, tb)
	assert.Same(t, tb, Default())

	sum := tb.Summary()
	assert.Equal(t, 73, sum.SaturationRows)
	assert.Equal(t, 298, sum.SuperheatedRows)
	assert.InDelta(t, 0.6117, sum.SatPressure.Min, 1e-9)
	assert.InDelta(t, 20000, sum.SatPressure.Max, 1e-9)
	assert.InDelta(t, 0.01, sum.SatTemperature.Min, 1e-12)
	assert.InDelta(t, 365.75, sum.SatTemperature.Max, 1e-12)
	assert.InDelta(t, 10, sum.SuperPressure.Min, 1e-9)
	assert.InDelta(t, 20000, sum.SuperPressure.Max, 1e-9)
	assert.Equal(t, 800.0, sum.SuperTemperature.Max)
}

func TestDefault_SuperheatedStartsAtSaturation(t *testing.T) {
	tb := Default()
	byP := map[float64]SatSample{}
	for _, row := range tb.Saturation() {
		byP[row.P] = row
	}

	// Every isobar opens with its saturated vapor row.
	matched := 0
	for _, row := range tb.Superheated() {
		sat, ok := byP[row.P]
		if !ok || row.T != sat.T {
			continue
		}
		assert.Equal(t, sat.Hg, row.H, "hg at P=%g", row.P)
		assert.Equal(t, sat.Sg, row.S, "sg at P=%g", row.P)
		matched++
	}
	assert.Greater(t, matched, 20)
}
