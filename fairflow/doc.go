// Package fairflow implements the FairFlow solver: it starts from the
// MinMax assignment and iteratively forbids low-affinity edges on the
// worst-off paper, re-solving via flowbuild after each attempt and keeping
// only re-solves that improve the (min per-paper mean, total affinity)
// lexicographic objective.
package fairflow
