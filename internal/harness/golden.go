package harness

import (
	"bytes"
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/steam/internal/steam"
)

// RunWithGolden runs a scenario and compares the text report against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, r *steam.Resolver, sc *Scenario) (*Report, error) {
	t.Helper()

	report, err := Run(context.Background(), r, sc)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, sc.Name, report); err != nil {
		return nil, err
	}
	return report, nil
}

// AssertGolden compares an existing report against its golden file.
func AssertGolden(t *testing.T, name string, report *Report) error {
	t.Helper()

	var buf bytes.Buffer
	if err := report.Format(&buf); err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, buf.Bytes())
	return nil
}
