package main

import (
	"encoding/json"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/alexflint/go-arg"
	"github.com/arclabs561/rank-eval/eval"
	"github.com/arclabs561/rank-eval/output"
	"github.com/arclabs561/rank-eval/trec"
	"github.com/go-errors/errors"
	"log"
	"os"
	"path"
)

var (
	name    = "rankeval"
	version = "25.Aug.2026"
	author  = "arclabs"
)

type args struct {
	Measures    []string `help:"evaluation measures to compute (name or name@k)" arg:"-e,separate"`
	Output      string   `help:"file to write the evaluation to instead of stdout" arg:"-o"`
	Format      string   `help:"output format (json/csv)" arg:"-f"`
	Summary     bool     `help:"only output aggregated scores" arg:"-s"`
	Lenient     bool     `help:"skip malformed lines instead of aborting"`
	Beta        float64  `help:"beta for f1 measures"`
	Persistence float64  `help:"persistence for rbp measures"`
	Workers     int      `help:"topics to evaluate concurrently" arg:"-w"`
	QrelsFile   string   `help:"path to qrels file" arg:"required,positional"`
	RunFile     string   `help:"path to run file" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

type config struct {
	Measures []string `toml:"measures"`
	Format   string   `toml:"format"`
}

func main() {
	var args args
	arg.MustParse(&args)

	dir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalln(err)
	}

	f, err := os.OpenFile(path.Join(dir, ".rankeval"), os.O_RDWR|os.O_CREATE, 0664)
	if err != nil {
		log.Fatalln(err)
	}

	var c config
	_, err = toml.DecodeReader(f, &c)
	if err != nil {
		log.Fatalln(err)
	}

	if len(args.Measures) == 0 {
		args.Measures = c.Measures
	}
	if len(args.Measures) == 0 {
		args.Measures = []string{"map", "mrr", "precision@10", "ndcg@10"}
	}
	if len(args.Format) == 0 {
		args.Format = c.Format
	}

	var opts []eval.BatchOption
	if args.Beta != 0 {
		opts = append(opts, eval.Beta(args.Beta))
	}
	if args.Persistence != 0 {
		opts = append(opts, eval.Persistence(args.Persistence))
	}
	if args.Workers != 0 {
		opts = append(opts, eval.Workers(args.Workers))
	}

	batch, err := eval.NewBatch(args.Measures, opts...)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}

	runs := loadRuns(args.RunFile, args.Lenient)
	qrels := loadQrels(args.QrelsFile, args.Lenient)

	ev := batch.Evaluate(runs, qrels)
	if ev.Skipped > 0 {
		log.Printf("skipped %d topics not present in both files\n", ev.Skipped)
	}
	if ev.Evaluated == 0 {
		log.Fatalln("no topics in common between runs and qrels")
	}

	var v string
	if args.Summary {
		avgs := make(map[string]float64, len(ev.Aggregated)+1)
		for measure, value := range ev.Aggregated {
			avgs[measure] = value
		}
		avgs["NumQ"] = float64(ev.Evaluated)
		b, err := json.Marshal(avgs)
		if err != nil {
			log.Fatalln(err)
		}
		v = string(b)
	} else {
		formatter := output.JSONFormatter
		if args.Format == "csv" {
			formatter = output.CSVFormatter
		}
		v, err = formatter(ev)
		if err != nil {
			log.Fatalln(err)
		}
	}

	if len(args.Output) > 0 {
		o, err := os.OpenFile(args.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
		if err != nil {
			log.Fatalln(err)
		}
		_, err = o.WriteString(v)
		if err != nil {
			log.Fatalln(err)
		}
	} else {
		_, err = os.Stdout.WriteString(v)
		if err != nil {
			log.Fatalln(err)
		}
	}
}

func loadRuns(file string, lenient bool) *trec.ResultFile {
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
	return trec.GroupResults(results)
}

func loadQrels(file string, lenient bool) *trec.QrelsFile {
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
	return trec.GroupQrels(qrels)
}
