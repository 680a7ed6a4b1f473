// Package harness runs batch scenarios of steam states.
//
// # Scenario Format
//
// Scenarios are YAML files validated against an embedded CUE schema
// (schema.cue) before decoding:
//
//	name: steam_cycle
//	description: "Turbine inlet and exit"
//	tolerance: 0.005        # relative, optional
//	workers: 4              # optional
//	states:
//	  - name: inlet
//	    given: {P: 7350, x: 0.9}
//	    expect: {region: saturated, T: 289.15}
//	  - name: missing
//	    given: {s: 7}
//	    expect: {error: E_INSUFFICIENT_INPUT}
//
// Property keys are the state symbols P, T, x, v, h and s. An expected
// value passes when it is within tolerance·max(|want|, 1) of the resolved
// value.
//
// # Execution
//
// Run resolves states concurrently on a bounded worker pool and returns a
// Report whose states keep scenario order, so reports and their golden
// files are deterministic.
//
//	sc, err := harness.LoadScenario("testdata/scenarios/steam_cycle.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := harness.Run(ctx, resolver, sc)
package harness
