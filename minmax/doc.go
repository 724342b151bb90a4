// Package minmax implements the MinMax solver: a single min-cost flow
// solve over the graph built by flowbuild, producing the maximum-affinity
// assignment achievable under the hard quota and constraint bounds.
package minmax
