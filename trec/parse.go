package trec

import (
	"bufio"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseError describes a malformed run or qrels line. Line is 1-based
// and counts every physical line of the input, including skipped ones.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// ResultFromLine parses one run file line of the form
//
//	topic Q0 docid rank score runname
//
// The returned error is a *ParseError without a line number; the reader
// functions fill that in.
func ResultFromLine(line string) (*Result, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("expected 6 fields, got %d", len(fields))}
	}
	if fields[1] != "Q0" {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("expected literal Q0, got %q", fields[1])}
	}
	rank, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil || rank < 0 {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("invalid rank %q", fields[3])}
	}
	score, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("invalid score %q", fields[4])}
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("score %q is not finite", fields[4])}
	}
	return &Result{
		Topic:     fields[0],
		Iteration: fields[1],
		DocId:     fields[2],
		Rank:      rank,
		Score:     score,
		RunName:   fields[5],
	}, nil
}

// QrelFromLine parses one qrels file line of the form
//
//	topic 0 docid relevance
//
// Relevance parses as a signed integer; negative grades are legal here
// and treated as not relevant downstream.
func QrelFromLine(line string) (*Qrel, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("expected 4 fields, got %d", len(fields))}
	}
	if fields[1] != "0" {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("expected literal 0, got %q", fields[1])}
	}
	score, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("invalid relevance %q", fields[3])}
	}
	return &Qrel{
		Topic:     fields[0],
		Iteration: fields[1],
		DocId:     fields[2],
		Score:     score,
	}, nil
}

// ResultsFromReader parses a whole run file strictly: the first
// malformed line aborts with its *ParseError and nothing partial is
// returned. Blank lines and lines starting with # are skipped. The
// records come back flat and in file order; group them with
// GroupResults.
func ResultsFromReader(r io.Reader) (ResultList, error) {
	list, _, err := readResults(r, false)
	return list, err
}

// LenientResultsFromReader parses a run file skipping malformed lines
// instead of aborting, and reports how many were skipped.
func LenientResultsFromReader(r io.Reader) (ResultList, int, error) {
	return readResults(r, true)
}

// QrelsFromReader parses a whole qrels file strictly, in the same way
// as ResultsFromReader.
func QrelsFromReader(r io.Reader) (QrelList, error) {
	list, _, err := readQrels(r, false)
	return list, err
}

// LenientQrelsFromReader parses a qrels file skipping malformed lines
// instead of aborting, and reports how many were skipped.
func LenientQrelsFromReader(r io.Reader) (QrelList, int, error) {
	return readQrels(r, true)
}

func readResults(r io.Reader, lenient bool) (ResultList, int, error) {
	var (
		list    ResultList
		skipped int
	)
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		res, err := ResultFromLine(line)
		if err != nil {
			if lenient {
				skipped++
				continue
			}
			return nil, 0, at(err, n)
		}
		list = append(list, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "reading run file")
	}
	return list, skipped, nil
}

func readQrels(r io.Reader, lenient bool) (QrelList, int, error) {
	var (
		list    QrelList
		skipped int
	)
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		qrel, err := QrelFromLine(line)
		if err != nil {
			if lenient {
				skipped++
				continue
			}
			return nil, 0, at(err, n)
		}
		list = append(list, qrel)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "reading qrels file")
	}
	return list, skipped, nil
}

func skipLine(line string) bool {
	return len(line) == 0 || strings.HasPrefix(line, "#")
}

func at(err error, line int) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Line = line
	}
	return err
}
