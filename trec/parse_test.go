package trec_test

import (
	"github.com/arclabs561/rank-eval/trec"
	"os"
	"strings"
	"testing"
)

func TestResultsFromReader(t *testing.T) {
	f, err := os.OpenFile("testdata/sample.run", os.O_RDONLY, 0777)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	results, err := trec.ResultsFromReader(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	first := results[0]
	if first.Topic != "101" || first.Iteration != "Q0" || first.DocId != "doc2" || first.Rank != 1 || first.Score != 14.89 || first.RunName != "bm25" {
		t.Errorf("unexpected first result: %v", first)
	}
	last := results[4]
	if last.Topic != "102" || last.DocId != "doc4" {
		t.Errorf("expected records in file order, got %v last", last)
	}
}

func TestQrelsFromReader(t *testing.T) {
	f, err := os.OpenFile("testdata/sample.qrels", os.O_RDONLY, 0777)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	qrels, err := trec.QrelsFromReader(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(qrels) != 5 {
		t.Fatalf("expected 5 qrels, got %d", len(qrels))
	}
	first := qrels[0]
	if first.Topic != "101" || first.Iteration != "0" || first.DocId != "doc2" || first.Score != 2 {
		t.Errorf("unexpected first qrel: %v", first)
	}
	if qrels[4].Score != -1 {
		t.Errorf("expected negative grade to parse, got %d", qrels[4].Score)
	}
}

func TestResultFromLineRejects(t *testing.T) {
	lines := []string{
		"101 Q0 doc1 1",
		"101 Q0 doc1 1 1.5 run extra",
		"101 QO doc1 1 1.5 run",
		"101 Q0 doc1 -1 1.5 run",
		"101 Q0 doc1 first 1.5 run",
		"101 Q0 doc1 1 high run",
		"101 Q0 doc1 1 NaN run",
		"101 Q0 doc1 1 +Inf run",
	}
	for _, line := range lines {
		if _, err := trec.ResultFromLine(line); err == nil {
			t.Errorf("expected error for %q", line)
		}
	}
}

func TestQrelFromLineRejects(t *testing.T) {
	lines := []string{
		"101 0 doc1",
		"101 0 doc1 1 extra",
		"101 Q0 doc1 1",
		"101 0 doc1 maybe",
		"101 0 doc1 1.0",
	}
	for _, line := range lines {
		if _, err := trec.QrelFromLine(line); err == nil {
			t.Errorf("expected error for %q", line)
		}
	}
}

func TestStrictParseReportsLine(t *testing.T) {
	input := "# comment\n\n101 Q0 doc1 1 1.5 run\nbad line here\n"
	_, err := trec.ResultsFromReader(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	pe, ok := err.(*trec.ParseError)
	if !ok {
		t.Fatalf("expected *trec.ParseError, got %T", err)
	}
	if pe.Line != 4 {
		t.Errorf("expected error on line 4, got line %d", pe.Line)
	}
	if !strings.Contains(pe.Error(), "line 4") {
		t.Errorf("expected line number in message, got %q", pe.Error())
	}
}

func TestLenientParseSkips(t *testing.T) {
	input := "101 Q0 doc1 1 1.5 run\nbad line here\n101 Q0 doc2 2 1.2 run\n"
	results, skipped, err := trec.LenientResultsFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", skipped)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}

	qrels, skipped, err := trec.LenientQrelsFromReader(strings.NewReader("101 0 doc1 1\nnope\n"))
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 || len(qrels) != 1 {
		t.Errorf("expected 1 qrel and 1 skipped, got %d and %d", len(qrels), skipped)
	}
}
