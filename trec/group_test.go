package trec_test

import (
	"github.com/arclabs561/rank-eval/trec"
	"os"
	"reflect"
	"testing"
)

func TestGroupResults(t *testing.T) {
	f, err := os.OpenFile("testdata/sample.run", os.O_RDONLY, 0777)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	results, err := trec.ResultsFromReader(f)
	if err != nil {
		t.Fatal(err)
	}
	file := trec.GroupResults(results)
	if len(file.Results) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(file.Results))
	}
	if docs := file.Results["101"].Docs(); !reflect.DeepEqual(docs, []string{"doc2", "doc5", "doc1"}) {
		t.Errorf("topic 101 out of file order: %v", docs)
	}
	if docs := file.Results["102"].Docs(); !reflect.DeepEqual(docs, []string{"doc9", "doc4"}) {
		t.Errorf("topic 102 out of file order: %v", docs)
	}
}

func TestGroupResultsDuplicates(t *testing.T) {
	list := trec.ResultList{
		{Topic: "1", Iteration: "Q0", DocId: "a", Rank: 1, Score: 3, RunName: "r"},
		{Topic: "1", Iteration: "Q0", DocId: "b", Rank: 2, Score: 2, RunName: "r"},
		{Topic: "1", Iteration: "Q0", DocId: "a", Rank: 3, Score: 1, RunName: "r"},
	}
	file := trec.GroupResults(list)
	docs := file.Results["1"].Docs()
	if !reflect.DeepEqual(docs, []string{"b", "a"}) {
		t.Fatalf("expected the later duplicate to win at its own position, got %v", docs)
	}
	if survivor := file.Results["1"][1]; survivor.Rank != 3 || survivor.Score != 1 {
		t.Errorf("expected the later record to survive, got rank %d score %v", survivor.Rank, survivor.Score)
	}
}

func TestGroupResultsKeepsRank(t *testing.T) {
	list := trec.ResultList{
		{Topic: "1", Iteration: "Q0", DocId: "a", Rank: 7, Score: 0.2, RunName: "r"},
		{Topic: "1", Iteration: "Q0", DocId: "b", Rank: 4, Score: 0.9, RunName: "r"},
	}
	file := trec.GroupResults(list)
	if docs := file.Results["1"].Docs(); !reflect.DeepEqual(docs, []string{"a", "b"}) {
		t.Errorf("expected file order regardless of rank and score, got %v", docs)
	}
	if file.Results["1"][0].Rank != 7 {
		t.Errorf("expected ranks untouched, got %d", file.Results["1"][0].Rank)
	}
}

func TestGroupQrels(t *testing.T) {
	list := trec.QrelList{
		{Topic: "1", Iteration: "0", DocId: "a", Score: 1},
		{Topic: "1", Iteration: "0", DocId: "b", Score: 0},
		{Topic: "2", Iteration: "0", DocId: "a", Score: 2},
		{Topic: "1", Iteration: "0", DocId: "a", Score: 0},
	}
	file := trec.GroupQrels(list)
	if len(file.Qrels) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(file.Qrels))
	}
	if got := file.Qrels["1"]["a"].Score; got != 0 {
		t.Errorf("expected the later judgment to win, got %d", got)
	}
	if got := file.Qrels["2"]["a"].Score; got != 2 {
		t.Errorf("expected topics to stay separate, got %d", got)
	}
}
