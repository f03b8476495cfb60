package eval

import (
	rankeval "github.com/arclabs561/rank-eval"
	"github.com/arclabs561/rank-eval/trec"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"sort"
	"sync"
)

// Evaluation is the outcome of a batch run: scores keyed by topic and
// measure name, the mean of each measure over every evaluated topic,
// and counts of evaluated and skipped topics. With nothing evaluated
// the aggregates are NaN, never a fabricated zero.
type Evaluation struct {
	PerQuery   map[string]map[string]float64
	Aggregated map[string]float64
	Evaluated  int
	Skipped    int
}

// Topics lists the evaluated topics in sorted order.
func (e *Evaluation) Topics() []string {
	topics := make([]string, 0, len(e.PerQuery))
	for topic := range e.PerQuery {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Series extracts one measure's per-topic scores in sorted topic order,
// ready for pairing with a series from another system evaluated over
// the same topics.
func (e *Evaluation) Series(name string) []float64 {
	topics := e.Topics()
	series := make([]float64, len(topics))
	for i, topic := range topics {
		series[i] = e.PerQuery[topic][name]
	}
	return series
}

// Batch evaluates a fixed list of measures over every topic present in
// both a run file and a qrels file. Specs are parsed once when the
// batch is built and an invalid spec fails the whole batch up front.
type Batch struct {
	measures []Measure
	workers  int
}

// BatchOption adjusts how a batch is built.
type BatchOption func(*Batch) error

// Beta overrides the f-measure beta for every f1 measure in the batch.
func Beta(beta float64) BatchOption {
	return func(b *Batch) error {
		if err := checkBeta(beta); err != nil {
			return err
		}
		for i := range b.measures {
			b.measures[i].Beta = beta
		}
		return nil
	}
}

// Persistence overrides the persistence for every rbp measure in the
// batch.
func Persistence(persistence float64) BatchOption {
	return func(b *Batch) error {
		if err := checkPersistence(persistence); err != nil {
			return err
		}
		for i := range b.measures {
			b.measures[i].Persistence = persistence
		}
		return nil
	}
}

// Workers sets how many topics are scored concurrently. The default is
// 1; the outcome is identical for any setting.
func Workers(n int) BatchOption {
	return func(b *Batch) error {
		if n < 1 {
			return errors.Wrapf(rankeval.ErrInvalidParameter, "workers must be at least 1, got %d", n)
		}
		b.workers = n
		return nil
	}
}

// NewBatch parses measure specs into a batch.
func NewBatch(specs []string, opts ...BatchOption) (*Batch, error) {
	b := &Batch{workers: 1}
	for _, spec := range specs {
		m, err := ParseMeasure(spec)
		if err != nil {
			return nil, err
		}
		b.measures = append(b.measures, m)
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Evaluate scores every topic present in both files. Topics on only
// one side are skipped and counted. Scheduling never changes the
// outcome: topics are scored independently and aggregation always sums
// in sorted topic order.
func (b *Batch) Evaluate(runs *trec.ResultFile, qrels *trec.QrelsFile) *Evaluation {
	shared := make([]string, 0, len(runs.Results))
	skipped := 0
	for topic := range runs.Results {
		if _, ok := qrels.Qrels[topic]; ok {
			shared = append(shared, topic)
		} else {
			skipped++
		}
	}
	for topic := range qrels.Qrels {
		if _, ok := runs.Results[topic]; !ok {
			skipped++
		}
	}
	sort.Strings(shared)

	ev := &Evaluation{
		PerQuery:   make(map[string]map[string]float64, len(shared)),
		Aggregated: make(map[string]float64, len(b.measures)),
		Evaluated:  len(shared),
		Skipped:    skipped,
	}

	var mu sync.Mutex
	sem := make(chan bool, b.workers)
	for _, topic := range shared {
		sem <- true
		go func(topic string) {
			defer func() { <-sem }()
			ranked := runs.Results[topic].Docs()
			relevant := RelevanceSetOf(qrels.Qrels[topic])
			scores := make(map[string]float64, len(b.measures))
			for _, m := range b.measures {
				scores[m.Name()] = m.Evaluate(ranked, relevant)
			}
			mu.Lock()
			ev.PerQuery[topic] = scores
			mu.Unlock()
		}(topic)
	}
	for i := 0; i < cap(sem); i++ {
		sem <- true
	}

	for _, m := range b.measures {
		name := m.Name()
		series := make([]float64, len(shared))
		for i, topic := range shared {
			series[i] = ev.PerQuery[topic][name]
		}
		ev.Aggregated[name] = stat.Mean(series, nil)
	}
	return ev
}
