// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import "github.com/js-arias/autolin/mattree"

// Threshold are the minimum values
// required for a candidate node
// to have a positive score.
type Threshold struct {
	// Size is the covered size
	// that must be exceeded by a candidate.
	Size float64

	// Distinction is the minimum weighted distance
	// between the parent and the candidate.
	Distinction float64
}

// EvaluateCandidate returns the score of a candidate node
// as a sublineage of the parent node.
//
// The score is
//
//	count * distinction / (mean + distinction)
//
// in which count is the covered leaf weight of the candidate,
// distinction the distance between the parent
// and the candidate,
// and mean the mean distance
// from the candidate to its covered leaves.
// Candidates without coverage,
// or below any threshold,
// have score 0.
func EvaluateCandidate(parent, candidate int, cov map[int]Coverage, dist map[int]float64, th Threshold) float64 {
	c, ok := cov[candidate]
	if !ok || c.Count <= th.Size || c.Count <= 0 || c.Sum == 0 {
		return 0
	}

	cd, ok := dist[candidate]
	if !ok {
		return 0
	}
	distinction := cd - dist[parent]
	if distinction < th.Distinction {
		return 0
	}

	mean := c.Sum / c.Count
	if mean+distinction == 0 {
		return 0
	}
	s := c.Count * distinction / (mean + distinction)
	if s < 0 {
		return 0
	}
	return s
}

// EvaluateLineage returns the best scoring candidate
// for a sublineage of the parent node.
//
// Leaves and banned nodes are not evaluated.
// Candidates are evaluated in the given order,
// and in the case of ties,
// the first candidate is returned.
// If no candidate has a positive score,
// it returns -1 as the candidate.
func EvaluateLineage(t *mattree.Tree, parent int, candidates []int, cov map[int]Coverage, dist map[int]float64, th Threshold, banned NodeSet) (float64, int) {
	best := -1
	var max float64
	for _, c := range candidates {
		if t.IsLeaf(c) || banned.Has(c) {
			continue
		}
		s := EvaluateCandidate(parent, c, cov, dist, th)
		if s > max {
			max = s
			best = c
		}
	}
	return max, best
}
