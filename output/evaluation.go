// Package output provides different formats of output for evaluations.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"github.com/arclabs561/rank-eval/eval"
	"github.com/google/uuid"
	"sort"
	"strconv"
	"time"
)

// EvaluationFormatter renders a batch evaluation for people or files.
type EvaluationFormatter func(*eval.Evaluation) (string, error)

// Report wraps an evaluation with identifying metadata so results can
// be told apart after the fact.
type Report struct {
	ID         string                        `json:"id"`
	Created    time.Time                     `json:"created"`
	Evaluated  int                           `json:"evaluated"`
	Skipped    int                           `json:"skipped"`
	Aggregated map[string]float64            `json:"aggregated"`
	PerQuery   map[string]map[string]float64 `json:"per_query"`
}

// NewReport attaches a fresh id and timestamp to an evaluation.
func NewReport(ev *eval.Evaluation) Report {
	return Report{
		ID:         uuid.New().String(),
		Created:    time.Now(),
		Evaluated:  ev.Evaluated,
		Skipped:    ev.Skipped,
		Aggregated: ev.Aggregated,
		PerQuery:   ev.PerQuery,
	}
}

// JSONFormatter renders the evaluation as an indented JSON report.
// Evaluations with no topics carry NaN aggregates, which JSON cannot
// represent; callers should catch that case first.
func JSONFormatter(ev *eval.Evaluation) (string, error) {
	v, err := json.MarshalIndent(NewReport(ev), "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CSVFormatter renders one row per topic and a trailing mean row, with
// a column per measure. Columns are sorted by measure name and rows by
// topic, so the same evaluation always renders the same bytes.
func CSVFormatter(ev *eval.Evaluation) (string, error) {
	names := make([]string, 0, len(ev.Aggregated))
	for name := range ev.Aggregated {
		names = append(names, name)
	}
	sort.Strings(names)

	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	w.Write(append([]string{"query_id"}, names...))
	for _, topic := range ev.Topics() {
		record := make([]string, len(names)+1)
		record[0] = topic
		for i, name := range names {
			record[i+1] = strconv.FormatFloat(ev.PerQuery[topic][name], 'f', 6, 64)
		}
		w.Write(record)
	}
	record := make([]string, len(names)+1)
	record[0] = "mean"
	for i, name := range names {
		record[i+1] = strconv.FormatFloat(ev.Aggregated[name], 'f', 6, 64)
	}
	w.Write(record)
	w.Flush()
	return b.String(), w.Error()
}
