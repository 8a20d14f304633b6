// Package surface builds the decision surface: one resolved or rejected
// outcome per operator and operand-category combination.
//
// The surface is what a code-generation backend consumes. A build either
// produces a complete table or fails on the first design-time defect;
// partial tables are never returned.
//
// Cells are kept in a stable order (operator table order, then catalog
// order of the left and right operands) so text renderings and
// fingerprints of equal surfaces are byte-identical.
package surface
