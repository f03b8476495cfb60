package eval

import (
	"math"
	"sort"
)

// ComputeNDCG is the graded form of NDCG with linear gain: the grade
// itself is the gain and grades at or below zero contribute nothing.
// The ideal ordering takes every positive grade in the judgments,
// sorted descending and truncated at k. Scores are not comparable with
// implementations using the exponential 2^grade-1 gain.
func ComputeNDCG(ranked []string, qrels RelevanceMap, k int) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	var dcg float64
	for i, id := range ranked[:effectiveK(ranked, k)] {
		if grade := qrels[id]; grade > 0 {
			dcg += float64(grade) / math.Log2(float64(i)+2)
		}
	}
	gains := make([]float64, 0, len(qrels))
	for _, grade := range qrels {
		if grade > 0 {
			gains = append(gains, float64(grade))
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(gains)))
	if len(gains) > k {
		gains = gains[:k]
	}
	var idcg float64
	for i, gain := range gains {
		idcg += gain / math.Log2(float64(i)+2)
	}
	if idcg == 0 {
		return 0, nil
	}
	return dcg / idcg, nil
}

// ComputeMAP is the graded form of average precision: any grade above
// zero counts as relevant.
func ComputeMAP(ranked []string, qrels RelevanceMap) float64 {
	return AveragePrecision(ranked, qrels.Relevant())
}
