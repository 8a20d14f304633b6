// Package harness runs resolution scenarios against the decision surface.
//
// # Scenario Format
//
// Scenarios are defined in YAML files:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog: path/to/catalog.cue   # optional, defaults to the built-in catalog
//	operators: [add, neg]          # optional, defaults to every operator
//	cases:
//	  - op: add
//	    operands: [StrictlyPositiveFinite, StrictlyPositiveFinite]
//	    expect: StrictlyPositive
//	    assign: false
//	  - op: div
//	    operands: [NonZeroNonNaN, NonZeroNonNaN]
//	    expect: rejected
//	assertions:
//	  - type: stats
//	    resolved: 1128
//	    rejected: 312
//	  - type: sound
//	  - type: no_rejections
//	    op: neg
//	  - type: persisted
//
// # Assertion Types
//
//   - stats: cell counts of the built surface (cells, resolved, rejected, assign)
//   - sound: the probe finds no unsound, loose or unjustified rejected cell
//   - no_rejections: every cell of op resolves
//   - persisted: the surface survives a round trip through an in-memory store
//
// # Deterministic Testing
//
// A scenario builds its surface from scratch and uses an in-memory SQLite
// database with fixed pass IDs, so results and golden files are identical
// across runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/concrete.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
