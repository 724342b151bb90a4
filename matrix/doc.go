// Package matrix provides the dense numeric primitive the randomized solver
// holds its fractional LP solution in: Dense is a row-major float64 matrix
// with bounds-checked cell access, mutated in place as the solver's
// Birkhoff-von-Neumann decomposition rounds that fractional solution down to
// an integral assignment. It intentionally does not attempt to be a general
// linear-algebra library; the LP relaxation itself is delegated to gonum and
// to the HiGHS solver bindings from the randomized package.
package matrix
