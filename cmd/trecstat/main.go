package main

import (
	"encoding/json"
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/arclabs561/rank-eval/dataset"
	"github.com/arclabs561/rank-eval/trec"
	"github.com/go-errors/errors"
	"gopkg.in/cheggaaa/pb.v1"
	"log"
	"os"
)

var (
	name    = "trecstat"
	version = "25.Aug.2026"
	author  = "arclabs"
)

type args struct {
	Describe  bool     `help:"also output summary statistics for each run" arg:"-d"`
	Lenient   bool     `help:"skip malformed lines instead of aborting"`
	QrelsFile string   `help:"path to qrels file" arg:"required,positional"`
	RunFiles  []string `help:"paths to run files" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

type report struct {
	File       string             `json:"file"`
	Validation dataset.Validation `json:"validation"`
	Summary    *dataset.Summary   `json:"summary,omitempty"`
}

func main() {
	var args args
	arg.MustParse(&args)

	qrels := loadQrels(args.QrelsFile, args.Lenient)

	reports := make([]report, 0, len(args.RunFiles))
	failed := 0
	bar := pb.New(len(args.RunFiles))
	bar.Start()
	for _, file := range args.RunFiles {
		results := loadRuns(file, args.Lenient)
		r := report{File: file, Validation: dataset.Validate(results, qrels)}
		if args.Describe {
			s := dataset.Describe(results, qrels)
			r.Summary = &s
		}
		if !r.Validation.Valid() {
			failed++
		}
		reports = append(reports, r)
		bar.Increment()
	}
	bar.Finish()

	v, err := json.MarshalIndent(reports, "", "    ")
	if err != nil {
		log.Fatalln(err)
	}
	_, err = os.Stdout.Write(append(v, '\n'))
	if err != nil {
		log.Fatalln(err)
	}

	if failed > 0 {
		log.Fatalf("%d of %d run files failed validation\n", failed, len(args.RunFiles))
	}
}

func loadRuns(file string, lenient bool) trec.ResultList {
	f, err := os.OpenFile(file, os.O_RDONLY, 0664)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()
	var results trec.ResultList
	if lenient {
		var skipped int
		results, skipped, err = trec.LenientResultsFromReader(f)
		if err == nil && skipped > 0 {
			log.Printf("skipped %d malformed lines in %s\n", skipped, file)
		}
	} else {
		results, err = trec.ResultsFromReader(f)
	}
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}
	return results
}

func loadQrels(file string, lenient bool) trec.QrelList {
	f, err := os.OpenFile(file, os.O_RDONLY, 0664)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()
	var qrels trec.QrelList
	if lenient {
		var skipped int
		qrels, skipped, err = trec.LenientQrelsFromReader(f)
		if err == nil && skipped > 0 {
			log.Printf("skipped %d malformed lines in %s\n", skipped, file)
		}
	} else {
		qrels, err = trec.QrelsFromReader(f)
	}
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}
	return qrels
}
