// Package scytale implements the rectangular transposition grid behind the
// Kryptos workbench.
//
// A scytale wraps text around a rod of fixed circumference. Here the rod is
// modelled as a grid with a fixed number of columns (the diameter): text is
// laid out row by row, every row may be rotated, the result may be reflected
// horizontally and vertically, and the grid is read back either by rows or by
// columns.
//
// # Pipeline
//
// [Build] runs a fixed sequence of stages. Each stage consumes the previous
// stage's rows and produces new ones, so a grid is never mutated after it
// has been handed out:
//
//  1. Row-major fill with the pad character for the short final row
//  2. Rotation of every row to the right by [Options.Offset]
//  3. Horizontal reflection when [Options.ReverseRows] is set
//  4. Vertical reflection when [Options.ReverseCols] is set
//
// Rotation and horizontal reflection do not commute; the order above is part
// of the contract.
//
// # Readouts
//
// [ReadByRows] and [ReadByColumns] flatten a grid back into text:
//
//	g := scytale.Build("ABCDEFG", 3, scytale.Options{})
//	scytale.ReadByRows(g, false)          // "ABC\nDEF\nG  "
//	scytale.ReadByColumns(g, true, false) // "ADGBE CF "
//
// # Diameter
//
// Diameters below [MinDiameter] are raised to it silently. Callers holding
// untyped input (query strings, JSON numbers) should go through
// [DiameterFromFloat] or [ParseDiameter], which reject non-finite values
// with [ErrInvalidDiameter] instead of coercing them.
//
// All functions in this package are pure and safe for concurrent use.
package scytale
