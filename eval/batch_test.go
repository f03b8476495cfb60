package eval_test

import (
	"errors"
	rankeval "github.com/arclabs561/rank-eval"
	"github.com/arclabs561/rank-eval/eval"
	"github.com/arclabs561/rank-eval/trec"
	"math"
	"os"
	"reflect"
	"testing"
)

func sampleFiles(t *testing.T) (*trec.ResultFile, *trec.QrelsFile) {
	t.Helper()
	f, err := os.OpenFile("testdata/sample.run", os.O_RDONLY, 0777)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	results, err := trec.ResultsFromReader(f)
	if err != nil {
		t.Fatal(err)
	}
	g, err := os.OpenFile("testdata/sample.qrels", os.O_RDONLY, 0777)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	qrels, err := trec.QrelsFromReader(g)
	if err != nil {
		t.Fatal(err)
	}
	return trec.GroupResults(results), trec.GroupQrels(qrels)
}

func TestBatchEvaluate(t *testing.T) {
	runs, qrels := sampleFiles(t)
	b, err := eval.NewBatch([]string{"mrr", "precision@2", "map"})
	if err != nil {
		t.Fatal(err)
	}
	ev := b.Evaluate(runs, qrels)
	if ev.Evaluated != 2 || ev.Skipped != 0 {
		t.Fatalf("expected 2 evaluated and 0 skipped, got %d and %d", ev.Evaluated, ev.Skipped)
	}
	almost(t, "topic 101 mrr", ev.PerQuery["101"]["mrr"], 1)
	almost(t, "topic 101 precision@2", ev.PerQuery["101"]["precision@2"], 0.5)
	almost(t, "topic 101 map", ev.PerQuery["101"]["map"], (1+2.0/3)/2)
	almost(t, "topic 102 map", ev.PerQuery["102"]["map"], 1)
	almost(t, "aggregated mrr", ev.Aggregated["mrr"], 1)
	almost(t, "aggregated map", ev.Aggregated["map"], ((1+2.0/3)/2+1)/2)
}

func TestBatchSkipsOneSidedTopics(t *testing.T) {
	runs := trec.GroupResults(trec.ResultList{
		{Topic: "1", Iteration: "Q0", DocId: "a", Rank: 1, Score: 2, RunName: "r"},
		{Topic: "1", Iteration: "Q0", DocId: "b", Rank: 2, Score: 1, RunName: "r"},
		{Topic: "2", Iteration: "Q0", DocId: "x", Rank: 1, Score: 2, RunName: "r"},
		{Topic: "2", Iteration: "Q0", DocId: "y", Rank: 2, Score: 1, RunName: "r"},
		{Topic: "3", Iteration: "Q0", DocId: "z", Rank: 1, Score: 1, RunName: "r"},
	})
	qrels := trec.GroupQrels(trec.QrelList{
		{Topic: "1", Iteration: "0", DocId: "a", Score: 1},
		{Topic: "2", Iteration: "0", DocId: "y", Score: 1},
		{Topic: "4", Iteration: "0", DocId: "q", Score: 1},
	})
	b, err := eval.NewBatch([]string{"mrr"})
	if err != nil {
		t.Fatal(err)
	}
	ev := b.Evaluate(runs, qrels)
	if ev.Evaluated != 2 {
		t.Errorf("expected 2 evaluated topics, got %d", ev.Evaluated)
	}
	if ev.Skipped != 2 {
		t.Errorf("expected 2 skipped topics, got %d", ev.Skipped)
	}
	almost(t, "aggregated mrr", ev.Aggregated["mrr"], (1+0.5)/2)
	if got := ev.Series("mrr"); !reflect.DeepEqual(got, []float64{1, 0.5}) {
		t.Errorf("expected series in sorted topic order, got %v", got)
	}
}

func TestBatchNoSharedTopics(t *testing.T) {
	runs := trec.GroupResults(trec.ResultList{
		{Topic: "1", Iteration: "Q0", DocId: "a", Rank: 1, Score: 1, RunName: "r"},
	})
	qrels := trec.GroupQrels(trec.QrelList{
		{Topic: "2", Iteration: "0", DocId: "a", Score: 1},
	})
	b, err := eval.NewBatch([]string{"map"})
	if err != nil {
		t.Fatal(err)
	}
	ev := b.Evaluate(runs, qrels)
	if ev.Evaluated != 0 || ev.Skipped != 2 {
		t.Fatalf("expected 0 evaluated and 2 skipped, got %d and %d", ev.Evaluated, ev.Skipped)
	}
	if !math.IsNaN(ev.Aggregated["map"]) {
		t.Errorf("expected NaN aggregate with no topics, got %v", ev.Aggregated["map"])
	}
}

func TestBatchWorkersDeterministic(t *testing.T) {
	runs, qrels := sampleFiles(t)
	specs := []string{"mrr", "ndcg@2", "rbp@2", "map"}
	serial, err := eval.NewBatch(specs)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := eval.NewBatch(specs, eval.Workers(4))
	if err != nil {
		t.Fatal(err)
	}
	a, b := serial.Evaluate(runs, qrels), parallel.Evaluate(runs, qrels)
	if !reflect.DeepEqual(a.PerQuery, b.PerQuery) {
		t.Errorf("per-query scores differ across worker counts: %v vs %v", a.PerQuery, b.PerQuery)
	}
	if !reflect.DeepEqual(a.Aggregated, b.Aggregated) {
		t.Errorf("aggregates differ across worker counts: %v vs %v", a.Aggregated, b.Aggregated)
	}
}

func TestBatchUsesBinaryNDCG(t *testing.T) {
	// Grades above 1 still gain 1 in a batch; a reversed ordering of two
	// relevant documents is as good as any other ordering of them.
	runs := trec.GroupResults(trec.ResultList{
		{Topic: "1", Iteration: "Q0", DocId: "b", Rank: 1, Score: 2, RunName: "r"},
		{Topic: "1", Iteration: "Q0", DocId: "a", Rank: 2, Score: 1, RunName: "r"},
	})
	qrels := trec.GroupQrels(trec.QrelList{
		{Topic: "1", Iteration: "0", DocId: "a", Score: 3},
		{Topic: "1", Iteration: "0", DocId: "b", Score: 1},
	})
	b, err := eval.NewBatch([]string{"ndcg@2"})
	if err != nil {
		t.Fatal(err)
	}
	ev := b.Evaluate(runs, qrels)
	almost(t, "binary ndcg", ev.PerQuery["1"]["ndcg@2"], 1)
}

func TestBatchOptions(t *testing.T) {
	if _, err := eval.NewBatch([]string{"nope"}); !errors.Is(err, rankeval.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for unknown measure, got %v", err)
	}
	if _, err := eval.NewBatch([]string{"f1@5"}, eval.Beta(0)); !errors.Is(err, rankeval.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for beta=0, got %v", err)
	}
	if _, err := eval.NewBatch([]string{"rbp@5"}, eval.Persistence(1.2)); !errors.Is(err, rankeval.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for persistence=1.2, got %v", err)
	}
	if _, err := eval.NewBatch([]string{"map"}, eval.Workers(0)); !errors.Is(err, rankeval.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for workers=0, got %v", err)
	}

	runs := trec.GroupResults(trec.ResultList{
		{Topic: "1", Iteration: "Q0", DocId: "a", Rank: 1, Score: 2, RunName: "r"},
		{Topic: "1", Iteration: "Q0", DocId: "b", Rank: 2, Score: 1, RunName: "r"},
	})
	qrels := trec.GroupQrels(trec.QrelList{
		{Topic: "1", Iteration: "0", DocId: "a", Score: 1},
	})
	b, err := eval.NewBatch([]string{"rbp@2"}, eval.Persistence(0.5))
	if err != nil {
		t.Fatal(err)
	}
	ev := b.Evaluate(runs, qrels)
	almost(t, "rbp with persistence 0.5", ev.PerQuery["1"]["rbp@2"], 0.5)
}
