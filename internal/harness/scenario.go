package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/floatlat/internal/ir"
)

// Scenario defines a resolution test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional path to a CUE catalog. Empty means the
	// built-in catalog. Relative paths are resolved against the scenario
	// file when loaded with LoadScenario.
	Catalog string `yaml:"catalog,omitempty"`

	// Operators restricts the surface build. Empty means every operator.
	Operators []string `yaml:"operators,omitempty"`

	// Cases are individual resolutions with their expected outcome.
	Cases []Case `yaml:"cases"`

	// Assertions validate the surface as a whole.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Case is one expected resolution.
type Case struct {
	// Op is the operator name (e.g. "add").
	Op string `yaml:"op"`

	// Operands holds one category name for unary operators, two for binary.
	Operands []string `yaml:"operands"`

	// Expect is the resolved category name or "rejected".
	Expect string `yaml:"expect"`

	// Assign optionally checks the compound-assignment mark.
	Assign *bool `yaml:"assign,omitempty"`
}

// Assertion validates the built surface.
type Assertion struct {
	// Type is one of stats, sound, no_rejections, persisted.
	Type string `yaml:"type"`

	// Op names the operator (used by no_rejections).
	Op string `yaml:"op,omitempty"`

	// Expected counts (used by stats). Nil fields are not checked.
	Cells    *int `yaml:"cells,omitempty"`
	Resolved *int `yaml:"resolved,omitempty"`
	Rejected *int `yaml:"rejected,omitempty"`
	Assign   *int `yaml:"assign,omitempty"`
}

// Assertion type constants.
const (
	AssertStats        = "stats"
	AssertSound        = "sound"
	AssertNoRejections = "no_rejections"
	AssertPersisted    = "persisted"
)

// LoadScenario reads and parses a scenario YAML file, resolving the catalog
// path relative to the file. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "case:" vs "cases:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml file in dir, sorted by file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
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
	if len(s.Cases) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("at least one case or assertion is required")
	}

	if s.Catalog != "" {
		if _, err := os.Stat(s.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", s.Catalog)
		}
	}

	for i, name := range s.Operators {
		if _, ok := ir.ParseOperator(name); !ok {
			return fmt.Errorf("operators[%d]: unknown operator %q", i, name)
		}
	}

	for i, c := range s.Cases {
		op, ok := ir.ParseOperator(c.Op)
		if !ok {
			return fmt.Errorf("cases[%d]: unknown operator %q", i, c.Op)
		}
		if len(c.Operands) != op.Arity() {
			return fmt.Errorf("cases[%d]: %s takes %d operand(s), got %d", i, op, op.Arity(), len(c.Operands))
		}
		if c.Expect == "" {
			return fmt.Errorf("cases[%d]: expect is required", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertStats:
		if a.Cells == nil && a.Resolved == nil && a.Rejected == nil && a.Assign == nil {
			return fmt.Errorf("assertions[%d]: stats needs at least one count", index)
		}
	case AssertNoRejections:
		if _, ok := ir.ParseOperator(a.Op); !ok {
			return fmt.Errorf("assertions[%d]: no_rejections needs a known op, got %q", index, a.Op)
		}
	case AssertSound, AssertPersisted:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
