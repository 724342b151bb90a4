package flow

import "fmt"

// ErrNegativeCycle is returned by MinCostFlow when the initial network
// contains a negative-cost cycle reachable from the source; Johnson's
// potential technique cannot be seeded in that case.
var ErrNegativeCycle = fmt.Errorf("flow: negative cost cycle in network")
