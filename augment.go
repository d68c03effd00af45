// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/bmap/blob/master/LICENSE.txt.

package bmap

import "iter"

// Pair is a key/value entry of the map. Operations that evict an entry, such
// as [Tree.DeleteMin] and [Tree.DeleteMax], return it as a single value.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Augment maintains a per-subtree summary of type S across every structural
// mutation of the tree and folds summaries into an output of type O during
// lookups. Implementations must be pure: callbacks derive new summaries from
// their arguments and never mutate the tree. The tree invokes each callback
// at exactly one structural event, with the summaries as they were before
// the event.
//
// The zero-information implementation backing [New] turns the tree into a
// plain ordered map. [SumAugment] is the canonical non-trivial case.
type Augment[K, V, S, O any] interface {
	// InitialValue returns the summary of an empty subtree.
	InitialValue() S
	// InitialOutput returns the identity for the lookup fold. Both
	// [Tree.Search] and [Tree.AugmentSearch] start from it.
	InitialOutput() O
	// InsertedSubTree returns the summary of a subtree that had summary old
	// before the pair (key, value) was added somewhere below it.
	InsertedSubTree(key K, value V, old S) S
	// DeletedSubTree is the inverse of InsertedSubTree: the summary of a
	// subtree that had summary old before (key, value) was removed from it.
	DeletedSubTree(key K, value V, old S) S
	// Split returns the summaries of both halves of a node that is split
	// about median. left and right hold the pairs remaining in each half,
	// leftChildren and rightChildren their child summaries, and old the
	// summary of the node before the split. The median pair itself moves to
	// the parent and belongs to neither half.
	Split(left, right []Pair[K, V], median Pair[K, V], leftChildren, rightChildren iter.Seq[S], old S) (S, S)
	// SplitRoot returns the summary of a freshly grown root holding the
	// single pair root above the two halves of the former root.
	SplitRoot(root Pair[K, V], left, right S) S
	// Merge returns the summary of two sibling subtrees collapsed around the
	// parent pair that descends between them.
	Merge(parent Pair[K, V], left, right S) S
	// Steal returns the post-rotation summaries of a short node (the thief)
	// and the sibling lending to it (the victim). The parent pair descends
	// into the thief, victim ascends to the parent, and stolenChild, when
	// non-nil, is the summary of the child migrating from victim to thief.
	Steal(parent, victim Pair[K, V], stolenChild *S, thief, victimSum S) (S, S)
	// Visit folds a prefix of one node into acc during a lookup and is
	// invoked once per visited level. found reports whether the lookup key
	// sits at pairs[idx]; otherwise idx is the child the lookup descends
	// into. Which prefix of pairs and children to fold is the
	// implementation's choice.
	Visit(found bool, idx int, pairs []Pair[K, V], children iter.Seq[S], sum S, acc O) O
}

// nopAugment carries no summary. It is the augmentation behind [New].
type nopAugment[K, V any] struct{}

func (nopAugment[K, V]) InitialValue() struct{}  { return struct{}{} }
func (nopAugment[K, V]) InitialOutput() struct{} { return struct{}{} }

func (nopAugment[K, V]) InsertedSubTree(K, V, struct{}) struct{} { return struct{}{} }
func (nopAugment[K, V]) DeletedSubTree(K, V, struct{}) struct{}  { return struct{}{} }

func (nopAugment[K, V]) Split([]Pair[K, V], []Pair[K, V], Pair[K, V], iter.Seq[struct{}], iter.Seq[struct{}], struct{}) (struct{}, struct{}) {
	return struct{}{}, struct{}{}
}

func (nopAugment[K, V]) SplitRoot(Pair[K, V], struct{}, struct{}) struct{} { return struct{}{} }
func (nopAugment[K, V]) Merge(Pair[K, V], struct{}, struct{}) struct{}     { return struct{}{} }

func (nopAugment[K, V]) Steal(Pair[K, V], Pair[K, V], *struct{}, struct{}, struct{}) (struct{}, struct{}) {
	return struct{}{}, struct{}{}
}

func (nopAugment[K, V]) Visit(bool, int, []Pair[K, V], iter.Seq[struct{}], struct{}, struct{}) struct{} {
	return struct{}{}
}

// Number constrains the value types [SumAugment] can accumulate.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// SumAugment computes the sum of the values of all keys smaller than or equal
// to a lookup key. With it, [Tree.AugmentSearch] answers prefix-sum queries
// (rank queries, when every value is 1) in logarithmic time.
type SumAugment[K any, V Number] struct{}

func (SumAugment[K, V]) InitialValue() V  { var zero V; return zero }
func (SumAugment[K, V]) InitialOutput() V { var zero V; return zero }

func (SumAugment[K, V]) InsertedSubTree(_ K, value V, old V) V { return old + value }
func (SumAugment[K, V]) DeletedSubTree(_ K, value V, old V) V  { return old - value }

// Split recomputes the left half from scratch and derives the right half from
// the old summary, so a split costs one pass over half a node instead of two.
func (SumAugment[K, V]) Split(left, _ []Pair[K, V], median Pair[K, V], leftChildren, _ iter.Seq[V], old V) (V, V) {
	var l V
	for _, p := range left {
		l += p.Value
	}
	for s := range leftChildren {
		l += s
	}
	return l, old - median.Value - l
}

func (SumAugment[K, V]) SplitRoot(root Pair[K, V], left, right V) V {
	return root.Value + left + right
}

func (SumAugment[K, V]) Merge(parent Pair[K, V], left, right V) V {
	return left + right + parent.Value
}

func (SumAugment[K, V]) Steal(parent, victim Pair[K, V], stolenChild *V, thief, victimSum V) (V, V) {
	if stolenChild != nil {
		return thief + parent.Value + *stolenChild, victimSum - victim.Value - *stolenChild
	}
	return thief + parent.Value, victimSum - victim.Value
}

func (SumAugment[K, V]) Visit(found bool, idx int, pairs []Pair[K, V], children iter.Seq[V], _ V, acc V) V {
	for _, p := range pairs[:idx] {
		acc += p.Value
	}

	take := idx
	if found {
		acc += pairs[idx].Value
		take = idx + 1
	}

	for s := range children {
		if take == 0 {
			break
		}
		acc += s
		take--
	}
	return acc
}
