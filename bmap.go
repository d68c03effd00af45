// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/bmap/blob/master/LICENSE.txt.

// Package bmap provides an in-memory ordered map backed by a B-tree, in the
// CLRS chapter 18 top-down variant: every operation descends the tree once,
// restoring the balance invariants on the way down, so insert, delete and
// lookup all run in O(log n) with a small, cache-friendly node count.
//
// Beyond the plain map surface, the tree is augmentable: an [Augment]
// supplies a set of pure callbacks which maintain a per-subtree summary
// across every split, merge and rotation. [Tree.AugmentSearch] then folds
// these summaries into a per-query output in logarithmic time, which turns
// the map into a rank/prefix-sum/order-statistic index. See [SumAugment]
// for the canonical example.
//
// A Tree is single-writer: mutating methods require exclusive access, while
// lookups only need shared read access. The package performs no I/O and
// keeps no global state.
package bmap

import "cmp"

// Tree is an ordered map from K to V augmented by an [Augment] with summary
// type S and query output type O. Keys are unique. The zero Tree is not
// usable; create one with [New] or [WithAugment].
type Tree[K cmp.Ordered, V, S, O any] struct {
	root *node[K, V, S, O]
	aug  Augment[K, V, S, O]
	size int
}

// New returns an empty ordered map carrying no augmentation.
func New[K cmp.Ordered, V any]() *Tree[K, V, struct{}, struct{}] {
	return WithAugment[K, V, struct{}, struct{}](nopAugment[K, V]{})
}

// NewSum returns an empty ordered map augmented by [SumAugment], ready for
// prefix-sum queries through [Tree.AugmentSearch].
func NewSum[K cmp.Ordered, V Number]() *Tree[K, V, V, V] {
	return WithAugment[K, V, V, V](SumAugment[K, V]{})
}

// WithAugment returns an empty ordered map whose per-subtree summaries are
// maintained by aug. The summary and output type parameters cannot be
// inferred from aug and must be spelled out at the call site.
func WithAugment[K cmp.Ordered, V, S, O any](aug Augment[K, V, S, O]) *Tree[K, V, S, O] {
	return &Tree[K, V, S, O]{
		root: newLeaf[K, V, S, O](aug.InitialValue()),
		aug:  aug,
	}
}

// Len returns the number of pairs currently in the map.
func (t *Tree[K, V, S, O]) Len() int {
	return t.size
}

// Insert adds the pair (key, value) to the map and reports whether it was
// newly inserted. Inserting a key that is already present returns false and
// leaves the map's contents unchanged: the existing value is kept and no
// summary accounts for the rejected pair. Full nodes on the path to the key,
// the root included, may still be split.
func (t *Tree[K, V, S, O]) Insert(key K, value V) bool {
	if t.root.full() {
		// Splitting the root ahead of the descent is what grows the tree:
		// the median moves into a fresh root above the two halves, and the
		// insert then proceeds on a guaranteed non-full node.
		median, sibling := t.root.split(t.aug)
		root := &node[K, V, S, O]{
			pairs:    make([]Pair[K, V], 0, maxPairs),
			children: make([]*node[K, V, S, O], 0, maxChildren),
		}
		root.pairs = append(root.pairs, median)
		root.children = append(root.children, t.root, sibling)
		root.augVal = t.aug.SplitRoot(median, t.root.augVal, sibling.augVal)
		t.root = root
	}

	if !t.root.insertNonFull(t.aug, key, value) {
		return false
	}
	t.size++
	return true
}

// Delete removes key from the map, returning its value and whether it was
// present. Deleting an absent key leaves the map unchanged.
func (t *Tree[K, V, S, O]) Delete(key K) (V, bool) {
	v, ok := t.root.delete(t.aug, key)
	if ok {
		t.size--
	}
	// Rebalancing may leave an internal root with a single child even when
	// the key turned out to be absent, so the shrink check is unconditional.
	t.shrinkRoot()
	return v, ok
}

// DeleteMin evicts and returns the pair with the smallest key, or false when
// the map is empty.
func (t *Tree[K, V, S, O]) DeleteMin() (Pair[K, V], bool) {
	if t.size == 0 {
		return Pair[K, V]{}, false
	}
	p := t.root.deleteMin(t.aug)
	t.size--
	t.shrinkRoot()
	return p, true
}

// DeleteMax evicts and returns the pair with the largest key, or false when
// the map is empty.
func (t *Tree[K, V, S, O]) DeleteMax() (Pair[K, V], bool) {
	if t.size == 0 {
		return Pair[K, V]{}, false
	}
	p := t.root.deleteMax(t.aug)
	t.size--
	t.shrinkRoot()
	return p, true
}

// Search returns the value stored under key, or false when the key is not in
// the map.
func (t *Tree[K, V, S, O]) Search(key K) (V, bool) {
	v, _ := t.root.searchFold(t.aug, key, t.aug.InitialOutput())
	if v == nil {
		var zero V
		return zero, false
	}
	return *v, true
}

// AugmentSearch folds the augmentation summaries along the lookup path for
// key into a single output, starting from the augmentation's initial output.
// For [SumAugment] this is the sum of the values of all keys smaller than or
// equal to key; the exact prefix semantics belong to the augmentation's
// Visit callback.
func (t *Tree[K, V, S, O]) AugmentSearch(key K) O {
	_, acc := t.root.searchFold(t.aug, key, t.aug.InitialOutput())
	return acc
}

// Min returns the pair with the smallest key without removing it, or false
// when the map is empty.
func (t *Tree[K, V, S, O]) Min() (Pair[K, V], bool) {
	if t.size == 0 {
		return Pair[K, V]{}, false
	}
	n := t.root
	for !n.leaf() {
		n = n.children[0]
	}
	return n.pairs[0], true
}

// Max returns the pair with the largest key without removing it, or false
// when the map is empty.
func (t *Tree[K, V, S, O]) Max() (Pair[K, V], bool) {
	if t.size == 0 {
		return Pair[K, V]{}, false
	}
	n := t.root
	for !n.leaf() {
		n = n.children[len(n.children)-1]
	}
	return n.pairs[len(n.pairs)-1], true
}

// shrinkRoot replaces an internal root left with zero pairs by its sole
// child, decreasing the height of the tree by one.
func (t *Tree[K, V, S, O]) shrinkRoot() {
	if len(t.root.pairs) == 0 && !t.root.leaf() {
		t.root = t.root.children[0]
	}
}
