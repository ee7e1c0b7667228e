package matryoshka

// buildBulk implements component G's bulk loader: partition a sorted,
// duplicate-free key slice into leaf-equivalents near capacity (the
// first leaves absorb the remainder so every leaf stays within one key
// of the others), then build outer-internal levels bottom-up at max
// fanout, exactly mirroring page's own packLeaves/packInternal one
// level up.
func buildBulk(keys []int32, h *Hierarchy) (*outerNode, error) {
	if len(keys) == 0 {
		leaf, err := h.newLeafEquiv()
		if err != nil {
			return nil, err
		}
		return newOuterLeaf(leaf), nil
	}

	leafCap := h.leafCapacity()
	numLeaves := (len(keys) + leafCap - 1) / leafCap
	base, rem := len(keys)/numLeaves, len(keys)%numLeaves

	leaves := make([]leafEquiv, 0, numLeaves)
	pos := 0
	for i := 0; i < numLeaves; i++ {
		cnt := base
		if i < rem {
			cnt++
		}
		le, err := h.newLeafEquiv()
		if err != nil {
			return nil, err
		}
		if err := le.rebuildFrom(keys[pos:pos+cnt], h); err != nil {
			return nil, err
		}
		if i > 0 {
			prev := leaves[i-1]
			prev.setSiblings(sibPrev(prev), le)
			le.setSiblings(prev, nil)
		}
		leaves = append(leaves, le)
		pos += cnt
	}

	level := []*outerNode{newOuterLeaf(leaves[0]).withLeaves(leaves)}
	if numLeaves > OuterMaxChildren {
		level = packLeafLevel(leaves)
	}
	for len(level) > 1 {
		level = packOuterInternalLevel(level)
	}
	return level[0], nil
}

func sibPrev(le leafEquiv) leafEquiv {
	p, _ := le.siblings()
	return p
}

func packLeafLevel(leaves []leafEquiv) []*outerNode {
	n := len(leaves)
	numNodes := (n + OuterMaxChildren - 1) / OuterMaxChildren
	base, rem := n/numNodes, n%numNodes
	nodes := make([]*outerNode, 0, numNodes)
	pos := 0
	for i := 0; i < numNodes; i++ {
		cnt := base
		if i < rem {
			cnt++
		}
		nodes = append(nodes, newOuterLeaf(leaves[pos]).withLeaves(leaves[pos:pos+cnt]))
		pos += cnt
	}
	return nodes
}

func packOuterInternalLevel(children []*outerNode) []*outerNode {
	n := len(children)
	numParents := (n + OuterMaxChildren - 1) / OuterMaxChildren
	base, rem := n/numParents, n%numParents
	parents := make([]*outerNode, 0, numParents)
	pos := 0
	for i := 0; i < numParents; i++ {
		cnt := base
		if i < rem {
			cnt++
		}
		group := children[pos : pos+cnt]
		seps := make([]int32, cnt-1)
		for j := 1; j < cnt; j++ {
			k, _ := group[j].leftmostKeyHint()
			seps[j-1] = k
		}
		parents = append(parents, newOuterInternal(seps, group))
		pos += cnt
	}
	return parents
}
