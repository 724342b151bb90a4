package flow

import (
	"container/heap"
	"context"
	"math"
)

// Network is a lightweight arc-list min-cost flow graph, not a general
// adjacency-map graph: arcs are stored in forward/reverse pairs at adjacent
// indices, which is what lets augmentation update residual capacities in
// O(1) instead of rebuilding a capacity map every round.
//
// Node IDs are dense integers in [0, N); callers own the mapping between
// their own vertex identifiers and these indices (the flowbuild package
// keeps that mapping alongside the Network it constructs).
type Network struct {
	n     int
	head  [][]int // head[u] = arc indices leaving u
	to    []int   // arc target node
	cap   []int64 // remaining capacity
	cost  []int64 // per-unit cost, forward arc; reverse arc carries the negation
	orig  []int64 // original capacity, for reporting flow = orig-cap
}

// NewNetwork allocates an empty Network over n nodes.
func NewNetwork(n int) *Network {
	return &Network{n: n, head: make([][]int, n)}
}

// AddArc inserts a forward arc u->v with the given capacity and per-unit
// cost, plus its zero-capacity reverse counterpart. Returns the forward
// arc's index, which doubles as a handle for locked/pre-committed arcs.
func (net *Network) AddArc(u, v int, capacity, cost int64) int {
	fwd := len(net.to)
	net.to = append(net.to, v)
	net.cap = append(net.cap, capacity)
	net.cost = append(net.cost, cost)
	net.orig = append(net.orig, capacity)
	net.head[u] = append(net.head[u], fwd)

	rev := len(net.to)
	net.to = append(net.to, u)
	net.cap = append(net.cap, 0)
	net.cost = append(net.cost, -cost)
	net.orig = append(net.orig, 0)
	net.head[v] = append(net.head[v], rev)

	return fwd
}

// FlowOn returns the flow currently carried by the arc returned from AddArc.
func (net *Network) FlowOn(arc int) int64 {
	return net.orig[arc] - net.cap[arc]
}

// ArcEndpoints returns the destination node and per-unit cost of arc.
func (net *Network) ArcEndpoints(arc int) (to int, cost int64) {
	return net.to[arc], net.cost[arc]
}

// mcmfHeapItem is a Dijkstra frontier entry keyed by reduced distance.
type mcmfHeapItem struct {
	node int
	dist int64
}

type mcmfHeap []mcmfHeapItem

func (h mcmfHeap) Len() int            { return len(h) }
func (h mcmfHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h mcmfHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mcmfHeap) Push(x interface{}) { *h = append(*h, x.(mcmfHeapItem)) }
func (h *mcmfHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

const mcmfInf = math.MaxInt64 / 4

// MinCostFlow pushes flow from source to sink one shortest augmenting path
// at a time (successive shortest paths), stopping either when the sink is
// unreachable or when maxUnits units have been sent (pass math.MaxInt64 to
// saturate). It uses Johnson's potential technique: an initial Bellman-Ford
// pass establishes node potentials tolerating negative edge costs (affinity
// costs are negative by construction), after which every augmentation reduces
// arc costs by the potential difference and runs Dijkstra on non-negative
// weights.
//
// ctx is polled once per augmentation; a canceled context aborts and returns
// the flow pushed so far alongside the context's error.
func MinCostFlow(ctx context.Context, net *Network, source, sink int, maxUnits int64) (flow int64, totalCost int64, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	potential, err := bellmanFordPotentials(net, source)
	if err != nil {
		return 0, 0, err
	}

	dist := make([]int64, net.n)
	prevArc := make([]int, net.n)

	for flow < maxUnits {
		if err := ctx.Err(); err != nil {
			return flow, totalCost, err
		}

		for i := range dist {
			dist[i] = mcmfInf
			prevArc[i] = -1
		}
		dist[source] = 0

		h := &mcmfHeap{{node: source, dist: 0}}
		visited := make([]bool, net.n)
		for h.Len() > 0 {
			cur := heap.Pop(h).(mcmfHeapItem)
			if visited[cur.node] {
				continue
			}
			visited[cur.node] = true
			if cur.node == sink {
				break
			}
			for _, arc := range net.head[cur.node] {
				if net.cap[arc] <= 0 {
					continue
				}
				v := net.to[arc]
				reduced := net.cost[arc] + potential[cur.node] - potential[v]
				nd := cur.dist + reduced
				if nd < dist[v] {
					dist[v] = nd
					prevArc[v] = arc
					heap.Push(h, mcmfHeapItem{node: v, dist: nd})
				}
			}
		}

		if dist[sink] >= mcmfInf {
			break
		}

		for v := 0; v < net.n; v++ {
			if dist[v] < mcmfInf {
				potential[v] += dist[v]
			}
		}

		bottleneck := maxUnits - flow
		for v := sink; v != source; {
			arc := prevArc[v]
			if net.cap[arc] < bottleneck {
				bottleneck = net.cap[arc]
			}
			v = reverseSourceOf(net, arc)
		}

		for v := sink; v != source; {
			arc := prevArc[v]
			net.cap[arc] -= bottleneck
			net.cap[arc^1] += bottleneck
			totalCost += bottleneck * net.cost[arc]
			v = reverseSourceOf(net, arc)
		}
		flow += bottleneck
	}

	return flow, totalCost, nil
}

// reverseSourceOf finds the tail of arc by following its paired reverse arc.
func reverseSourceOf(net *Network, arc int) int {
	return net.to[arc^1]
}

// bellmanFordPotentials computes shortest-path distances from source using
// Bellman-Ford, tolerating negative edge costs. It returns ErrNegativeCycle
// if a negative cycle reachable from source is detected.
func bellmanFordPotentials(net *Network, source int) ([]int64, error) {
	dist := make([]int64, net.n)
	for i := range dist {
		dist[i] = mcmfInf
	}
	dist[source] = 0

	for iter := 0; iter < net.n-1; iter++ {
		changed := false
		for u := 0; u < net.n; u++ {
			if dist[u] >= mcmfInf {
				continue
			}
			for _, arc := range net.head[u] {
				if net.cap[arc] <= 0 {
					continue
				}
				v := net.to[arc]
				nd := dist[u] + net.cost[arc]
				if nd < dist[v] {
					dist[v] = nd
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	for u := 0; u < net.n; u++ {
		if dist[u] >= mcmfInf {
			continue
		}
		for _, arc := range net.head[u] {
			if net.cap[arc] <= 0 {
				continue
			}
			v := net.to[arc]
			if dist[u]+net.cost[arc] < dist[v] {
				return nil, ErrNegativeCycle
			}
		}
	}

	for i := range dist {
		if dist[i] >= mcmfInf {
			dist[i] = 0
		}
	}

	return dist, nil
}
