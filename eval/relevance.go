package eval

import "github.com/arclabs561/rank-eval/trec"

// RelevanceSet is the set of relevant document ids for one topic.
type RelevanceSet map[string]bool

// NewRelevanceSet builds a set from document ids.
func NewRelevanceSet(ids ...string) RelevanceSet {
	s := make(RelevanceSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// RelevanceMap holds graded judgments for one topic, document id to
// grade. Grades above zero mark a document relevant; negative grades
// are legal in qrels files and count as not relevant.
type RelevanceMap map[string]int64

// Relevant derives the set of documents with a positive grade.
func (m RelevanceMap) Relevant() RelevanceSet {
	s := make(RelevanceSet)
	for id, grade := range m {
		if grade > 0 {
			s[id] = true
		}
	}
	return s
}

// RelevanceSetOf extracts the relevant documents from parsed qrels.
func RelevanceSetOf(qrels trec.Qrels) RelevanceSet {
	s := make(RelevanceSet)
	for id, qrel := range qrels {
		if qrel.Score > 0 {
			s[id] = true
		}
	}
	return s
}

// RelevanceMapOf extracts graded judgments from parsed qrels.
func RelevanceMapOf(qrels trec.Qrels) RelevanceMap {
	m := make(RelevanceMap, len(qrels))
	for id, qrel := range qrels {
		m[id] = qrel.Score
	}
	return m
}
