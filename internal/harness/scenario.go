package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/qsurf/internal/metrics"
	"github.com/roach88/qsurf/internal/synth"
)

// Scenario is one synthesis contract test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Distance is passed to synthesis unchanged, so invalid distances can
	// be exercised.
	Distance int `yaml:"distance"`

	// Logical lists logical operator tokens applied in order after synthesis.
	Logical []string `yaml:"logical,omitempty"`

	// Compat enables legacy synthesis behavior.
	Compat synth.Compat `yaml:"compat,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect lists expected outcomes. Nil pointers and empty collections are
// not checked.
type Expect struct {
	NumQubits    *int           `yaml:"num_qubits,omitempty"`
	RegisterSize *int           `yaml:"register_size,omitempty"`
	Stabilizers  *int           `yaml:"stabilizers,omitempty"`
	Depth        *int           `yaml:"depth,omitempty"`
	Ops          *int           `yaml:"ops,omitempty"`
	GateCounts   map[string]int `yaml:"gate_counts,omitempty"`

	// Prefix must match the first instructions of the circuit.
	Prefix []string `yaml:"prefix,omitempty"`

	// Suffix must match the last instructions of the circuit.
	Suffix []string `yaml:"suffix,omitempty"`

	// Error is the expected error kind. When set, all other fields are
	// ignored.
	Error string `yaml:"error,omitempty"`
}

// Error kinds accepted in Expect.Error.
const (
	ErrorInvalidDistance  = metrics.ReasonInvalidDistance
	ErrorInvalidOperation = metrics.ReasonInvalidOperation
	ErrorOther            = metrics.ReasonOther
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every .yaml and .yml file in dir, sorted by file
// name. Subdirectories are not visited.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", p, s.Name, prev)
		}
		seen[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Expect.Error {
	case "", ErrorInvalidDistance, ErrorInvalidOperation, ErrorOther:
	default:
		return fmt.Errorf("expect.error: unknown error kind %q", s.Expect.Error)
	}

	for gate, n := range s.Expect.GateCounts {
		if n < 0 {
			return fmt.Errorf("expect.gate_counts[%s]: count must be non-negative", gate)
		}
	}
	return nil
}
