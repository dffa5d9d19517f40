// Package rules derives association rules X → Y from mined frequent itemsets.
//
// For a frequent itemset S and a non-empty proper subset Y of S, the rule
// (S−Y) → Y has
//
//	confidence = count(S) / count(S−Y)
//	support    = count(S) / N
//	lift       = confidence / (count(Y) / N)
//	conviction = (1 − count(Y)/N) / (1 − confidence)
//
// Consequents are grown level-wise with candidate.Generate: moving an item
// from the antecedent to the consequent can only lower confidence, so a
// consequent is extended only if all of its one-smaller subsets passed.
package rules

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/apriori/candidate"
	"github.com/katalvlaran/apriori/itemset"
)

var (
	// ErrNilCollection indicates that Generate received no itemsets.
	ErrNilCollection = errors.New("rules: collection is nil")

	// ErrBadMinConfidence indicates a minimum confidence that is NaN or outside [0, 1].
	ErrBadMinConfidence = errors.New("rules: min confidence must be a number in [0, 1]")
)

// Rule is an association rule LHS → RHS with the counts it was derived from.
type Rule[T cmp.Ordered] struct {
	LHS      itemset.Itemset[T]
	RHS      itemset.Itemset[T]
	Count    int // transactions containing LHS ∪ RHS
	CountLHS int
	CountRHS int
	N        int // total transactions
}

// Confidence is P(RHS | LHS).
func (r Rule[T]) Confidence() float64 {
	return itemset.Support(r.Count, r.CountLHS)
}

// Support is P(LHS ∪ RHS).
func (r Rule[T]) Support() float64 {
	return itemset.Support(r.Count, r.N)
}

// Lift is Confidence divided by the support of RHS; 1 means independence.
func (r Rule[T]) Lift() float64 {
	return r.Confidence() / itemset.Support(r.CountRHS, r.N)
}

// Conviction is +Inf for rules that never fail.
func (r Rule[T]) Conviction() float64 {
	conf := r.Confidence()
	if conf >= 1 {
		return math.Inf(1)
	}

	return (1 - itemset.Support(r.CountRHS, r.N)) / (1 - conf)
}

// String renders the rule with its metrics.
func (r Rule[T]) String() string {
	return fmt.Sprintf("%v -> %v (conf: %.3f, supp: %.3f, lift: %.3f, conv: %.3f)",
		r.LHS, r.RHS, r.Confidence(), r.Support(), r.Lift(), r.Conviction())
}

// Generate returns every rule with confidence ≥ minConfidence that can be
// formed from the itemsets in c, where n is the transaction count returned
// by mining.Mine. Rules are sorted by confidence, then lift (both
// descending), then by LHS and RHS.
func Generate[T cmp.Ordered](c *itemset.Collection[T], n int, minConfidence float64) ([]Rule[T], error) {
	if c == nil {
		return nil, ErrNilCollection
	}
	if math.IsNaN(minConfidence) || minConfidence < 0 || minConfidence > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBadMinConfidence, minConfidence)
	}
	if n <= 0 {
		return nil, nil
	}

	var out []Rule[T]
	for k, level := range c.Levels() {
		if k < 2 {
			continue
		}
		for is, count := range level.All() {
			out = appendRules(out, c, is, count, n, minConfidence)
		}
	}
	slices.SortFunc(out, func(a, b Rule[T]) int {
		if d := cmp.Compare(b.Confidence(), a.Confidence()); d != 0 {
			return d
		}
		if d := cmp.Compare(b.Lift(), a.Lift()); d != 0 {
			return d
		}
		if d := itemset.Compare(a.LHS, b.LHS); d != 0 {
			return d
		}
		return itemset.Compare(a.RHS, b.RHS)
	})

	return out, nil
}

// appendRules adds the rules derived from one frequent itemset.
func appendRules[T cmp.Ordered](out []Rule[T], c *itemset.Collection[T], is itemset.Itemset[T], count, n int, minConfidence float64) []Rule[T] {
	// 1) Single-item consequents.
	var passed []itemset.Itemset[T]
	for _, item := range is {
		rhs := itemset.Itemset[T]{item}
		if r, ok := newRule(c, is, count, rhs, n); ok && r.Confidence() >= minConfidence {
			out = append(out, r)
			passed = append(passed, rhs)
		}
	}

	// 2) Grow consequents while the antecedent stays non-empty.
	for m := 2; m < len(is) && len(passed) > 1; m++ {
		var next []itemset.Itemset[T]
		for rhs := range candidate.Generate(passed) {
			if r, ok := newRule(c, is, count, rhs, n); ok && r.Confidence() >= minConfidence {
				out = append(out, r)
				next = append(next, rhs)
			}
		}
		passed = next
	}

	return out
}

// newRule builds (is − rhs) → rhs. It reports false if a count is unavailable.
func newRule[T cmp.Ordered](c *itemset.Collection[T], is itemset.Itemset[T], count int, rhs itemset.Itemset[T], n int) (Rule[T], bool) {
	lhs := is.Difference(rhs)
	countLHS, ok := c.Count(lhs)
	if !ok || countLHS == 0 {
		return Rule[T]{}, false
	}
	countRHS, ok := c.Count(rhs)
	if !ok || countRHS == 0 {
		return Rule[T]{}, false
	}

	return Rule[T]{
		LHS:      lhs,
		RHS:      rhs,
		Count:    count,
		CountLHS: countLHS,
		CountRHS: countRHS,
		N:        n,
	}, true
}
