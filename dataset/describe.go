package dataset

import (
	"github.com/arclabs561/rank-eval/trec"
	"gonum.org/v1/gonum/stat"
	"sort"
)

// MinMeanMax summarizes a count per topic.
type MinMeanMax struct {
	Min  int     `json:"min"`
	Mean float64 `json:"mean"`
	Max  int     `json:"max"`
}

// Distribution summarizes retrieval scores.
type Distribution struct {
	Min       float64    `json:"min"`
	Max       float64    `json:"max"`
	Mean      float64    `json:"mean"`
	StdDev    float64    `json:"std_dev"`
	Quantiles [3]float64 `json:"quantiles"` // 25th, 50th and 75th percentiles
}

// Summary describes the size and shape of a run file and its
// judgments.
type Summary struct {
	Results      int           `json:"results"`
	Topics       int           `json:"topics"`
	DocsPerTopic MinMeanMax    `json:"docs_per_topic"`
	Scores       Distribution  `json:"scores"`
	Judgments    int           `json:"judgments"`
	Relevant     int           `json:"relevant"`
	GradeCounts  map[int64]int `json:"grade_counts"`
}

// Describe summarizes flat records from one run file and one qrels
// file.
func Describe(results trec.ResultList, qrels trec.QrelList) Summary {
	s := Summary{
		Results:     len(results),
		Judgments:   len(qrels),
		GradeCounts: make(map[int64]int),
	}
	perTopic := make(map[string]int)
	scores := make([]float64, len(results))
	for i, res := range results {
		perTopic[res.Topic]++
		scores[i] = res.Score
	}
	s.Topics = len(perTopic)
	if s.Topics > 0 {
		docs := MinMeanMax{Min: len(results)}
		total := 0
		for _, n := range perTopic {
			if n < docs.Min {
				docs.Min = n
			}
			if n > docs.Max {
				docs.Max = n
			}
			total += n
		}
		docs.Mean = float64(total) / float64(s.Topics)
		s.DocsPerTopic = docs
	}
	s.Scores = describeScores(scores)
	for _, qrel := range qrels {
		s.GradeCounts[qrel.Score]++
		if qrel.Score > 0 {
			s.Relevant++
		}
	}
	return s
}

func describeScores(scores []float64) Distribution {
	if len(scores) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	d := Distribution{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: stat.Mean(sorted, nil),
	}
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	d.Quantiles[0] = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	d.Quantiles[1] = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.Quantiles[2] = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return d
}
