// Package eval computes ranked retrieval effectiveness measures over
// binary and graded relevance judgments, and batches them over the
// topics of a run file.
package eval

import (
	rankeval "github.com/arclabs561/rank-eval"
	"github.com/pkg/errors"
	"math"
)

// Ranked lists are best-first document ids. Every measure uses 1-based
// ranks with the discount 1/log2(rank+1) and truncates cutoffs to the
// list length, so a short list is never penalized for results it did
// not return. Documents must be unique within one list; grouping a run
// file already guarantees that.

// PrecisionAtK is the fraction of the top k results that are relevant.
// An empty list scores 0.
func PrecisionAtK(ranked []string, relevant RelevanceSet, k int) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	n := effectiveK(ranked, k)
	if n == 0 {
		return 0, nil
	}
	hits := 0
	for _, id := range ranked[:n] {
		if relevant[id] {
			hits++
		}
	}
	return float64(hits) / float64(n), nil
}

// RecallAtK is the fraction of all relevant documents found in the top
// k. A topic with no relevant documents scores 0.
func RecallAtK(ranked []string, relevant RelevanceSet, k int) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	if len(relevant) == 0 {
		return 0, nil
	}
	hits := 0
	for _, id := range ranked[:effectiveK(ranked, k)] {
		if relevant[id] {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant)), nil
}

// MRR is the reciprocal rank of the first relevant result, 0 when none
// is relevant.
func MRR(ranked []string, relevant RelevanceSet) float64 {
	for i, id := range ranked {
		if relevant[id] {
			return 1 / float64(i+1)
		}
	}
	return 0
}

// DCGAtK sums the discount at each relevant position in the top k.
func DCGAtK(ranked []string, relevant RelevanceSet, k int) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	var dcg float64
	for i, id := range ranked[:effectiveK(ranked, k)] {
		if relevant[id] {
			dcg += 1 / math.Log2(float64(i)+2)
		}
	}
	return dcg, nil
}

// IDCGAtK is the best DCG achievable with nRelevant relevant documents:
// the sum of the first min(nRelevant, k) discounts.
func IDCGAtK(nRelevant, k int) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	if nRelevant > k {
		nRelevant = k
	}
	var idcg float64
	for i := 0; i < nRelevant; i++ {
		idcg += 1 / math.Log2(float64(i)+2)
	}
	return idcg, nil
}

// NDCGAtK is DCG normalized by the ideal DCG, 0 when there are no
// relevant documents.
func NDCGAtK(ranked []string, relevant RelevanceSet, k int) (float64, error) {
	idcg, err := IDCGAtK(len(relevant), k)
	if err != nil {
		return 0, err
	}
	if idcg == 0 {
		return 0, nil
	}
	dcg, err := DCGAtK(ranked, relevant, k)
	if err != nil {
		return 0, err
	}
	return dcg / idcg, nil
}

// AveragePrecision is the mean of the precision at each relevant hit,
// divided by the total number of relevant documents, 0 when there are
// none.
func AveragePrecision(ranked []string, relevant RelevanceSet) float64 {
	if len(relevant) == 0 {
		return 0
	}
	hits := 0
	var sum float64
	for i, id := range ranked {
		if relevant[id] {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}
	return sum / float64(len(relevant))
}

// ERRAtK is the expected reciprocal rank under a cascade model. With
// binary relevance a relevant result always stops the scan, so the
// continuation probability drops to zero after the first hit.
func ERRAtK(ranked []string, relevant RelevanceSet, k int) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	var (
		score float64
		p     = 1.0
	)
	for i, id := range ranked[:effectiveK(ranked, k)] {
		if relevant[id] {
			r := 1.0
			score += p * r / float64(i+1)
			p *= 1 - r
		}
	}
	return score, nil
}

// RBPAtK is rank-biased precision: (1-p) times the sum of p^(rank-1)
// over the relevant positions, where p is the chance a user persists to
// the next result.
func RBPAtK(ranked []string, relevant RelevanceSet, k int, persistence float64) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	if err := checkPersistence(persistence); err != nil {
		return 0, err
	}
	var (
		score  float64
		weight = 1.0
	)
	for _, id := range ranked[:effectiveK(ranked, k)] {
		if relevant[id] {
			score += weight
		}
		weight *= persistence
	}
	return (1 - persistence) * score, nil
}

// FMeasureAtK is the weighted harmonic mean of precision and recall at
// k. Beta above 1 favours recall, below 1 precision.
func FMeasureAtK(ranked []string, relevant RelevanceSet, k int, beta float64) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	if err := checkBeta(beta); err != nil {
		return 0, err
	}
	precision, err := PrecisionAtK(ranked, relevant, k)
	if err != nil {
		return 0, err
	}
	recall, err := RecallAtK(ranked, relevant, k)
	if err != nil {
		return 0, err
	}
	betaSquared := beta * beta
	if betaSquared*precision+recall == 0 {
		return 0, nil
	}
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall), nil
}

// SuccessAtK is 1 when any of the top k results is relevant, else 0.
func SuccessAtK(ranked []string, relevant RelevanceSet, k int) (float64, error) {
	if err := checkK(k); err != nil {
		return 0, err
	}
	for _, id := range ranked[:effectiveK(ranked, k)] {
		if relevant[id] {
			return 1, nil
		}
	}
	return 0, nil
}

// RPrecision is the precision at a cutoff equal to the number of
// relevant documents, 0 when there are none.
func RPrecision(ranked []string, relevant RelevanceSet) float64 {
	if len(relevant) == 0 {
		return 0
	}
	precision, err := PrecisionAtK(ranked, relevant, len(relevant))
	if err != nil {
		return 0
	}
	return precision
}

func effectiveK(ranked []string, k int) int {
	if k > len(ranked) {
		return len(ranked)
	}
	return k
}

func checkK(k int) error {
	if k < 1 {
		return errors.Wrapf(rankeval.ErrInvalidParameter, "cutoff must be at least 1, got %d", k)
	}
	return nil
}

func checkBeta(beta float64) error {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta <= 0 {
		return errors.Wrapf(rankeval.ErrInvalidParameter, "beta must be positive and finite, got %v", beta)
	}
	return nil
}

func checkPersistence(p float64) error {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return errors.Wrapf(rankeval.ErrInvalidParameter, "persistence must be strictly between 0 and 1, got %v", p)
	}
	return nil
}
