// Package pathfind moves enemies across a board: A* pursuit, a greedy
// one-step approach, and idle wandering.
package pathfind

import (
	"container/heap"

	"github.com/samdwyer/delve/internal/grid"
)

type pathNode struct {
	pos    grid.Pos
	g      int
	f      int
	seq    int // insertion order, breaks f ties first-in first-out
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*pathNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// FindPath returns the full path from start to goal, excluding start, over
// 4-connected tiles in open. The goal is always treated as walkable.
func FindPath(start, goal grid.Pos, open grid.PosSet) ([]grid.Pos, bool) {
	if start == goal {
		return nil, false
	}
	walkable := func(p grid.Pos) bool { return p == goal || open.Has(p) }

	queue := &pathQueue{}
	heap.Init(queue)
	seq := 0
	heap.Push(queue, &pathNode{pos: start, f: grid.Manhattan(start, goal), seq: seq})
	gScore := map[grid.Pos]int{start: 0}
	closed := grid.NewPosSet()

	for queue.Len() > 0 {
		current := heap.Pop(queue).(*pathNode)
		if closed.Has(current.pos) {
			continue
		}
		closed.Put(current.pos)
		if current.pos == goal {
			return reconstruct(current), true
		}

		for _, next := range grid.Neighbors4(current.pos) {
			if !walkable(next) || closed.Has(next) {
				continue
			}
			tentative := current.g + 1
			if prev, ok := gScore[next]; ok && tentative >= prev {
				continue
			}
			gScore[next] = tentative
			seq++
			heap.Push(queue, &pathNode{
				pos:    next,
				g:      tentative,
				f:      tentative + grid.Manhattan(next, goal),
				seq:    seq,
				parent: current,
			})
		}
	}
	return nil, false
}

// FindBestStep returns the first step of the shortest path from start to
// goal, or false when goal is unreachable through open.
func FindBestStep(start, goal grid.Pos, open grid.PosSet) (grid.Pos, bool) {
	path, ok := FindPath(start, goal, open)
	if !ok || len(path) == 0 {
		return grid.Pos{}, false
	}
	return path[0], true
}

func reconstruct(end *pathNode) []grid.Pos {
	var path []grid.Pos
	for n := end; n.parent != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}
