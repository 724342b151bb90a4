// Package alternates computes, for each paper, an ordered list of
// non-conflicted reviewers not present in its assignment, for display as
// runner-up candidates. It is shared by every solver and never consumes
// reviewer capacity.
package alternates
