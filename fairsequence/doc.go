// Package fairsequence implements the FairSequence solver: a greedy
// priority-based allocator that repeatedly gives the next reviewer to
// whichever eligible paper currently has the smallest allocation relative
// to its target, then enforces any remaining per-paper minimum with a
// second pass of affinity-minimizing swaps. The result is deterministic
// and weighted envy-free up to one item, but not affinity-optimal.
package fairsequence
