package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/steam/internal/steam"
)

//go:embed schema.cue
var schemaCUE string

// Defaults applied when a scenario leaves them unset.
const (
	DefaultTolerance = 0.005
	DefaultWorkers   = 4
)

// Scenario is a batch of states to resolve, each with optional
// expectations.
type Scenario struct {
	// Name identifies the scenario and its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Tolerance is the relative tolerance for expected values.
	// Zero means DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`

	// Workers bounds the number of states resolved concurrently.
	// Zero means DefaultWorkers.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	States []StateStep `yaml:"states" json:"states"`
}

// StateStep is one state of a scenario.
type StateStep struct {
	Name string `yaml:"name" json:"name"`

	// Given maps property symbols (P, T, x, v, h, s) to values.
	Given map[string]float64 `yaml:"given" json:"given"`

	// Expect is checked after resolution. Nil means resolution must only
	// succeed.
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expect lists expected results. Values are compared with the scenario
// tolerance; Error expects resolution to fail with that code.
type Expect struct {
	Region string             `yaml:"region,omitempty" json:"region,omitempty"`
	Error  steam.ErrorCode    `yaml:"error,omitempty" json:"error,omitempty"`
	Values map[string]float64 `yaml:",inline" json:"values,omitempty"`
}

// LoadScenario reads, validates and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario validates data against the scenario schema and decodes it.
func ParseScenario(data []byte) (*Scenario, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Strict field validation catches typos the schema let through.
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// validateSchema unifies the YAML document with #Scenario.
func validateSchema(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	file, err := cueyaml.Extract("scenario.yaml", data)
	if err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return err
	}

	v := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(doc)
	return v.Validate(cue.Concrete(true))
}

// validateScenario checks what the schema cannot: unique state names and
// property symbols in expect values.
func validateScenario(sc *Scenario) error {
	seen := make(map[string]bool, len(sc.States))
	for i, st := range sc.States {
		if seen[st.Name] {
			return fmt.Errorf("states[%d]: duplicate name %q", i, st.Name)
		}
		seen[st.Name] = true

		if st.Expect == nil {
			continue
		}
		for _, sym := range sortedKeys(st.Expect.Values) {
			if _, err := steam.ParseProperty(sym); err != nil {
				return fmt.Errorf("states[%d].expect: %w", i, err)
			}
		}
		if st.Expect.Error != "" && (st.Expect.Region != "" || len(st.Expect.Values) > 0) {
			return fmt.Errorf("states[%d].expect: error cannot be combined with values", i)
		}
	}
	return nil
}

// build returns the steam state for a step.
func (st StateStep) build() (*steam.State, error) {
	s := steam.NewState(st.Name)
	for _, sym := range sortedKeys(st.Given) {
		p, err := steam.ParseProperty(sym)
		if err != nil {
			return nil, err
		}
		s.Set(p, st.Given[sym])
	}
	return s, nil
}

func (sc *Scenario) tolerance() float64 {
	if sc.Tolerance > 0 {
		return sc.Tolerance
	}
	return DefaultTolerance
}

func (sc *Scenario) workers() int {
	if sc.Workers > 0 {
		return sc.Workers
	}
	return DefaultWorkers
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
