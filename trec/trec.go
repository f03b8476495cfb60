// Package trec reads, groups and writes TREC run and qrels files.
package trec

import (
	"fmt"
	"strconv"
)

// Result is one row of a TREC run file. Rank is the rank recorded in the
// file, not the position of the row; grouping never recomputes it.
type Result struct {
	Topic     string
	Iteration string
	DocId     string
	Rank      int64
	Score     float64
	RunName   string
}

// String formats the result as a run file line.
func (r *Result) String() string {
	return fmt.Sprintf("%s %s %s %d %s %s", r.Topic, r.Iteration, r.DocId, r.Rank, strconv.FormatFloat(r.Score, 'g', -1, 64), r.RunName)
}

// ResultList is an ordered list of results for one topic.
type ResultList []*Result

// Docs extracts the document ids in list order.
func (list ResultList) Docs() []string {
	docs := make([]string, len(list))
	for i, res := range list {
		docs[i] = res.DocId
	}
	return docs
}

// ResultFile holds the results of a run file grouped by topic.
type ResultFile struct {
	Results map[string]ResultList
}

// NewResultFile creates an empty result file.
func NewResultFile() *ResultFile {
	return &ResultFile{Results: make(map[string]ResultList)}
}

// Qrel is one relevance judgment. Score is the relevance grade; only
// grades above zero mark the document relevant.
type Qrel struct {
	Topic     string
	Iteration string
	DocId     string
	Score     int64
}

// String formats the judgment as a qrels file line.
func (q *Qrel) String() string {
	return fmt.Sprintf("%s %s %s %d", q.Topic, q.Iteration, q.DocId, q.Score)
}

// QrelList is a flat list of judgments in file order.
type QrelList []*Qrel

// Qrels maps document ids to judgments for one topic.
type Qrels map[string]*Qrel

// QrelsFile holds the judgments of a qrels file grouped by topic.
type QrelsFile struct {
	Qrels map[string]Qrels
}

// NewQrelsFile creates an empty qrels file.
func NewQrelsFile() *QrelsFile {
	return &QrelsFile{Qrels: make(map[string]Qrels)}
}
