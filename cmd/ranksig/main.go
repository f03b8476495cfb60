package main

import (
	"encoding/json"
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/arclabs561/rank-eval/eval"
	"github.com/arclabs561/rank-eval/stats"
	"github.com/arclabs561/rank-eval/trec"
	"github.com/go-errors/errors"
	"github.com/xtgo/set"
	"log"
	"math"
	"os"
	"sort"
)

var (
	name    = "ranksig"
	version = "25.Aug.2026"
	author  = "arclabs"
)

type args struct {
	Measure   string  `help:"measure to compare the systems on (name or name@k)" arg:"-e"`
	Alpha     float64 `help:"significance level for the t-test" arg:"-a"`
	Level     float64 `help:"confidence level for the intervals" arg:"-l"`
	Workers   int     `help:"topics to evaluate concurrently" arg:"-w"`
	Lenient   bool    `help:"skip malformed lines instead of aborting"`
	QrelsFile string  `help:"path to qrels file" arg:"required,positional"`
	RunFileA  string  `help:"path to the first run file" arg:"required,positional"`
	RunFileB  string  `help:"path to the second run file" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

type comparison struct {
	Measure          string     `json:"measure"`
	Topics           int        `json:"topics"`
	MeanA            float64    `json:"mean_a"`
	MeanB            float64    `json:"mean_b"`
	IntervalA        [2]float64 `json:"interval_a"`
	IntervalB        [2]float64 `json:"interval_b"`
	T                float64    `json:"t"`
	P                float64    `json:"p"`
	DegreesOfFreedom int        `json:"degrees_of_freedom"`
	MeanDiff         float64    `json:"mean_diff"`
	EffectSize       *float64   `json:"effect_size,omitempty"`
	Significant      bool       `json:"significant"`
}

func main() {
	var args args
	arg.MustParse(&args)

	if len(args.Measure) == 0 {
		args.Measure = "map"
	}
	if args.Alpha == 0 {
		args.Alpha = 0.05
	}
	if args.Level == 0 {
		args.Level = 0.95
	}

	measure, err := eval.ParseMeasure(args.Measure)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}

	var opts []eval.BatchOption
	if args.Workers != 0 {
		opts = append(opts, eval.Workers(args.Workers))
	}
	batch, err := eval.NewBatch([]string{args.Measure}, opts...)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}

	qrels := loadQrels(args.QrelsFile, args.Lenient)
	evalA := batch.Evaluate(loadRuns(args.RunFileA, args.Lenient), qrels)
	evalB := batch.Evaluate(loadRuns(args.RunFileB, args.Lenient), qrels)

	shared := intersect(evalA.Topics(), evalB.Topics())
	if len(shared) < 2 {
		log.Fatalln("need at least 2 topics evaluated by both systems to compare them")
	}

	key := measure.Name()
	a := make([]float64, len(shared))
	b := make([]float64, len(shared))
	for i, topic := range shared {
		a[i] = evalA.PerQuery[topic][key]
		b[i] = evalB.PerQuery[topic][key]
	}

	test, err := stats.PairedTTest(a, b, args.Alpha)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}
	loA, hiA, err := stats.ConfidenceInterval(a, args.Level)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}
	loB, hiB, err := stats.ConfidenceInterval(b, args.Level)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}

	c := comparison{
		Measure:          key,
		Topics:           len(shared),
		MeanA:            mean(a),
		MeanB:            mean(b),
		IntervalA:        [2]float64{loA, hiA},
		IntervalB:        [2]float64{loB, hiB},
		T:                test.T,
		P:                test.P,
		DegreesOfFreedom: test.DegreesOfFreedom,
		MeanDiff:         test.MeanDiff,
		Significant:      test.Significant,
	}
	effect, err := stats.CohensD(a, b)
	if err != nil {
		log.Fatalln(errors.Wrap(err, 0).ErrorStack())
	}
	if !math.IsInf(effect, 0) && !math.IsNaN(effect) {
		c.EffectSize = &effect
	}

	v, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		log.Fatalln(err)
	}
	_, err = os.Stdout.Write(append(v, '\n'))
	if err != nil {
		log.Fatalln(err)
	}
}

func mean(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// intersect returns the topics present in both sorted slices, sorted.
func intersect(a, b []string) []string {
	data := append(append(make([]string, 0, len(a)+len(b)), a...), b...)
	n := set.Inter(sort.StringSlice(data), len(a))
	return data[:n]
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
