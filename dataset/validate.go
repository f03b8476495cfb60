// Package dataset checks run and qrels files for problems before
// evaluation and summarizes what they contain. It works on flat,
// ungrouped records so it still sees what grouping would collapse.
package dataset

import (
	"fmt"
	"github.com/arclabs561/rank-eval/trec"
	"github.com/xtgo/set"
	"sort"
)

// Overlap counts how the topic and document universes of a run file
// and a qrels file are shared.
type Overlap struct {
	TopicsInRuns  int `json:"topics_in_runs"`
	TopicsInQrels int `json:"topics_in_qrels"`
	TopicsInBoth  int `json:"topics_in_both"`
	DocsInRuns    int `json:"docs_in_runs"`
	DocsInQrels   int `json:"docs_in_qrels"`
	DocsInBoth    int `json:"docs_in_both"`
}

// Validation is the outcome of checking a run file against judgments.
type Validation struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Overlap  Overlap  `json:"overlap"`
}

// Valid reports whether the check found no errors. Warnings alone do
// not make a dataset invalid.
func (v Validation) Valid() bool {
	return len(v.Errors) == 0
}

// Validate checks that runs and judgments are usable together: both
// non-empty, sharing topics, free of duplicate entries, with sequential
// ranks inside each (topic, run tag) group and at least one relevant
// document per judged topic.
func Validate(results trec.ResultList, qrels trec.QrelList) Validation {
	var v Validation
	if len(results) == 0 {
		v.Errors = append(v.Errors, "run file has no records")
	}
	if len(qrels) == 0 {
		v.Errors = append(v.Errors, "qrels file has no records")
	}
	if len(v.Errors) > 0 {
		return v
	}

	v.Overlap = ComputeOverlap(results, qrels)
	if v.Overlap.TopicsInBoth == 0 {
		v.Errors = append(v.Errors, "no topics in common between runs and qrels")
	}
	if n := v.Overlap.TopicsInRuns - v.Overlap.TopicsInBoth; n > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d topics in runs but not in qrels, they will be skipped", n))
	}
	if n := v.Overlap.TopicsInQrels - v.Overlap.TopicsInBoth; n > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d topics judged but never retrieved", n))
	}

	seenRuns := make(map[[3]string]bool, len(results))
	for _, res := range results {
		key := [3]string{res.Topic, res.DocId, res.RunName}
		if seenRuns[key] {
			v.Warnings = append(v.Warnings, fmt.Sprintf("duplicate run entry: topic=%s doc=%s tag=%s", res.Topic, res.DocId, res.RunName))
		}
		seenRuns[key] = true
	}
	seenQrels := make(map[[2]string]bool, len(qrels))
	for _, qrel := range qrels {
		key := [2]string{qrel.Topic, qrel.DocId}
		if seenQrels[key] {
			v.Warnings = append(v.Warnings, fmt.Sprintf("duplicate qrel entry: topic=%s doc=%s", qrel.Topic, qrel.DocId))
		}
		seenQrels[key] = true
	}

	v.Warnings = append(v.Warnings, rankWarnings(results)...)
	v.Warnings = append(v.Warnings, judgmentWarnings(qrels)...)
	return v
}

// rankWarnings flags (topic, run tag) groups whose rank fields do not
// count 1..n. One warning per group, naming the first gap.
func rankWarnings(results trec.ResultList) []string {
	type group struct{ topic, tag string }
	ranks := make(map[group][]int64)
	for _, res := range results {
		g := group{res.Topic, res.RunName}
		ranks[g] = append(ranks[g], res.Rank)
	}
	groups := make([]group, 0, len(ranks))
	for g := range ranks {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].topic != groups[j].topic {
			return groups[i].topic < groups[j].topic
		}
		return groups[i].tag < groups[j].tag
	})
	var warnings []string
	for _, g := range groups {
		rs := ranks[g]
		sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
		for i, rank := range rs {
			if rank != int64(i+1) {
				warnings = append(warnings, fmt.Sprintf("topic %s (tag %s): rank %d not sequential, expected %d", g.topic, g.tag, rank, i+1))
				break
			}
		}
	}
	return warnings
}

// judgmentWarnings flags judged topics with no relevant document at
// all; every measure reads 0 on those.
func judgmentWarnings(qrels trec.QrelList) []string {
	positive := make(map[string]bool)
	for _, qrel := range qrels {
		if _, ok := positive[qrel.Topic]; !ok {
			positive[qrel.Topic] = false
		}
		if qrel.Score > 0 {
			positive[qrel.Topic] = true
		}
	}
	topics := make([]string, 0, len(positive))
	for topic := range positive {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	var warnings []string
	for _, topic := range topics {
		if !positive[topic] {
			warnings = append(warnings, fmt.Sprintf("topic %s has no relevant documents", topic))
		}
	}
	return warnings
}

// ComputeOverlap intersects the topic and document universes of runs
// and qrels.
func ComputeOverlap(results trec.ResultList, qrels trec.QrelList) Overlap {
	runTopics := make([]string, len(results))
	runDocs := make([]string, len(results))
	for i, res := range results {
		runTopics[i] = res.Topic
		runDocs[i] = res.DocId
	}
	qrelTopics := make([]string, len(qrels))
	qrelDocs := make([]string, len(qrels))
	for i, qrel := range qrels {
		qrelTopics[i] = qrel.Topic
		qrelDocs[i] = qrel.DocId
	}
	runTopics, qrelTopics = uniq(runTopics), uniq(qrelTopics)
	runDocs, qrelDocs = uniq(runDocs), uniq(qrelDocs)
	return Overlap{
		TopicsInRuns:  len(runTopics),
		TopicsInQrels: len(qrelTopics),
		TopicsInBoth:  interCount(runTopics, qrelTopics),
		DocsInRuns:    len(runDocs),
		DocsInQrels:   len(qrelDocs),
		DocsInBoth:    interCount(runDocs, qrelDocs),
	}
}

func uniq(s []string) []string {
	sort.Strings(s)
	return s[:set.Uniq(sort.StringSlice(s))]
}

func interCount(a, b []string) int {
	data := append(append(make([]string, 0, len(a)+len(b)), a...), b...)
	return set.Inter(sort.StringSlice(data), len(a))
}
