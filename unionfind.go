package main

// UnionFind is a disjoint-set forest over vertex indices 0..n-1.
// Union does no rank balancing; Find compresses paths instead.
type UnionFind struct {
	parent []int
}

// NewUnionFind puts every index in its own set.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &UnionFind{parent: parent}
}

// Len is the number of elements.
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

// Find returns the root of x and points every node on the way directly at it.
// It is iterative so long chains cannot exhaust the stack.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}

	for x != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}

	return root
}

// Union links the root of b under the root of a. It returns false when
// both are already in the same set, i.e. the edge would close a cycle.
func (uf *UnionFind) Union(a, b int) bool {
	rootA := uf.Find(a)
	rootB := uf.Find(b)

	if rootA == rootB {
		return false
	}

	uf.parent[rootB] = rootA
	return true
}

// Components counts the distinct roots.
func (uf *UnionFind) Components() int {
	roots := make(map[int]struct{})
	for i := 0; i < uf.Len(); i++ {
		roots[uf.Find(i)] = struct{}{}
	}
	return len(roots)
}
