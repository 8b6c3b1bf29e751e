package aggregator

import (
	"container/heap"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// edgeWeightStep is the weight added per event of age; the newest kill costs 0.
const edgeWeightStep = 100

type edge struct {
	to     int
	weight int
}

// killGraph is an undirected graph of who killed whom, nodes indexed by first
// appearance with the reference player at index 0.
type killGraph struct {
	names []model.PlayerName
	index map[model.PlayerName]int
	adj   []map[int]int // neighbour -> weight
}

func newKillGraph(reference model.PlayerName) *killGraph {
	g := &killGraph{index: make(map[model.PlayerName]int)}
	g.node(reference)
	return g
}

func (g *killGraph) node(name model.PlayerName) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	i := len(g.names)
	g.index[name] = i
	g.names = append(g.names, name)
	g.adj = append(g.adj, make(map[int]int))
	return i
}

// link adds or lowers the weight of the edge between a and b.
func (g *killGraph) link(a, b model.PlayerName, weight int) {
	ia, ib := g.node(a), g.node(b)
	if ia == ib {
		return
	}
	if w, ok := g.adj[ia][ib]; ok && w <= weight {
		return
	}
	g.adj[ia][ib] = weight
	g.adj[ib][ia] = weight
}

// pathCost orders candidate paths by total weight, then by hop count. Equal
// costs give equal parity, so the result does not depend on visit order.
type pathCost struct {
	weight int
	hops   int
}

func (c pathCost) less(o pathCost) bool {
	if c.weight != o.weight {
		return c.weight < o.weight
	}
	return c.hops < o.hops
}

type queueItem struct {
	node int
	cost pathCost
}

type costQueue []queueItem

func (q costQueue) Len() int { return len(q) }
func (q costQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost.less(q[j].cost)
	}
	return q[i].node < q[j].node
}
func (q costQueue) Swap(i, j int)  { q[i], q[j] = q[j], q[i] }
func (q *costQueue) Push(x any)    { *q = append(*q, x.(queueItem)) }
func (q *costQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// shortestHops runs Dijkstra from node 0 and returns the hop count of the
// cheapest path to every node, -1 for unreachable nodes.
func (g *killGraph) shortestHops() []int {
	n := len(g.names)
	best := make([]pathCost, n)
	hops := make([]int, n)
	done := make([]bool, n)
	for i := range hops {
		hops[i] = -1
	}

	hops[0] = 0
	q := &costQueue{{node: 0}}
	for q.Len() > 0 {
		it := heap.Pop(q).(queueItem)
		if done[it.node] {
			continue
		}
		done[it.node] = true
		hops[it.node] = it.cost.hops

		for to, w := range g.adj[it.node] {
			if done[to] {
				continue
			}
			c := pathCost{weight: it.cost.weight + w, hops: it.cost.hops + 1}
			if hops[to] >= 0 && !c.less(best[to]) {
				continue
			}
			best[to] = c
			hops[to] = c.hops
			heap.Push(q, queueItem{node: to, cost: c})
		}
	}
	return hops
}

// InferTeams partitions every player seen in kills into allies and enemies of
// reference.
//
// Kills are assumed to happen only between opposing teams, so the kill graph is
// close to bipartite. Each kill links killer and victim with weight
// (n-1-i)*100 for the i-th of n kills, so the cheapest path from reference is
// built from the most recent evidence and follows players who switch teams.
// A player reached over an even number of kills is an ally, over an odd number
// an enemy. Players with no path to reference are left out of both sets.
func InferTeams(reference model.PlayerName, kills []model.KillEvent) model.TeamPartition {
	g := newKillGraph(reference)
	n := len(kills)
	for i, k := range kills {
		g.link(k.Killer, k.Victim, (n-1-i)*edgeWeightStep)
	}

	p := model.TeamPartition{
		Reference: reference,
		Allies:    make(map[model.PlayerName]struct{}),
		Enemies:   make(map[model.PlayerName]struct{}),
	}
	for i, h := range g.shortestHops() {
		switch {
		case h < 0:
		case h%2 == 0:
			p.Allies[g.names[i]] = struct{}{}
		default:
			p.Enemies[g.names[i]] = struct{}{}
		}
	}
	return p
}
