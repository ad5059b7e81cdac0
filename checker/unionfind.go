package checker

import "github.com/PolyhedraZK/plonkish/circuit"

// unionFind maintains the transitive closure of equality-constrained cells.
type unionFind struct {
	parent map[circuit.Cell]circuit.Cell
	rank   map[circuit.Cell]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[circuit.Cell]circuit.Cell),
		rank:   make(map[circuit.Cell]int),
	}
}

func (u *unionFind) find(c circuit.Cell) circuit.Cell {
	p, ok := u.parent[c]
	if !ok {
		u.parent[c] = c
		return c
	}
	if p == c {
		return c
	}
	root := u.find(p)
	u.parent[c] = root
	return root
}

func (u *unionFind) union(a, b circuit.Cell) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// classes groups every known cell by its representative.
func (u *unionFind) classes() map[circuit.Cell][]circuit.Cell {
	res := make(map[circuit.Cell][]circuit.Cell)
	for c := range u.parent {
		root := u.find(c)
		res[root] = append(res[root], c)
	}
	return res
}
