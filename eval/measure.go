package eval

import (
	"fmt"
	rankeval "github.com/arclabs561/rank-eval"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// MeasureKind enumerates the measures a batch can run. The set is
// closed: measure specs parse to one of these, never to an open lookup.
type MeasureKind int

const (
	Precision MeasureKind = iota
	Recall
	ReciprocalRank
	NDCG
	AP
	ERR
	RBP
	F1
	Success
	RPrec
)

func (k MeasureKind) String() string {
	switch k {
	case Precision:
		return "precision"
	case Recall:
		return "recall"
	case ReciprocalRank:
		return "mrr"
	case NDCG:
		return "ndcg"
	case AP:
		return "map"
	case ERR:
		return "err"
	case RBP:
		return "rbp"
	case F1:
		return "f1"
	case Success:
		return "success"
	case RPrec:
		return "r_precision"
	}
	return "unknown"
}

// Parameter values used when a measure spec cannot express them.
const (
	DefaultBeta        = 1.0
	DefaultPersistence = 0.8
)

// Measure is one parsed measure spec. K is the cutoff, 0 meaning the
// whole list. Beta applies to f1 and Persistence to rbp; build measures
// with ParseMeasure so both carry valid values.
type Measure struct {
	Kind        MeasureKind
	K           int
	Beta        float64
	Persistence float64
}

// ParseMeasure parses a spec of the form name or name@k, with names
// drawn from precision, recall, mrr, ndcg, map (alias ap), err, rbp,
// f1, success and r_precision. Cutoffs on measures that take none
// (mrr, map, r_precision) are rejected.
func ParseMeasure(spec string) (Measure, error) {
	m := Measure{Beta: DefaultBeta, Persistence: DefaultPersistence}
	name := strings.TrimSpace(spec)
	cutoff := ""
	hasCutoff := false
	if i := strings.Index(name, "@"); i >= 0 {
		name, cutoff = name[:i], name[i+1:]
		hasCutoff = true
	}
	switch strings.ToLower(name) {
	case "precision":
		m.Kind = Precision
	case "recall":
		m.Kind = Recall
	case "mrr":
		m.Kind = ReciprocalRank
	case "ndcg":
		m.Kind = NDCG
	case "map", "ap":
		m.Kind = AP
	case "err":
		m.Kind = ERR
	case "rbp":
		m.Kind = RBP
	case "f1":
		m.Kind = F1
	case "success":
		m.Kind = Success
	case "r_precision":
		m.Kind = RPrec
	default:
		return Measure{}, errors.Wrapf(rankeval.ErrInvalidParameter, "unknown measure %q", spec)
	}
	if hasCutoff {
		switch m.Kind {
		case ReciprocalRank, AP, RPrec:
			return Measure{}, errors.Wrapf(rankeval.ErrInvalidParameter, "%s takes no cutoff", m.Kind)
		}
		k, err := strconv.Atoi(cutoff)
		if err != nil || k < 1 {
			return Measure{}, errors.Wrapf(rankeval.ErrInvalidParameter, "invalid cutoff in %q", spec)
		}
		m.K = k
	}
	return m, nil
}

// Name is the canonical form of the measure, used as the key in
// evaluation results.
func (m Measure) Name() string {
	if m.K > 0 {
		return fmt.Sprintf("%s@%d", m.Kind, m.K)
	}
	return m.Kind.String()
}

// Evaluate scores one ranked list against binary judgments. Parameters
// are validated at parse time, so Evaluate is total; an empty list
// scores 0 on every measure.
func (m Measure) Evaluate(ranked []string, relevant RelevanceSet) float64 {
	k := m.K
	if k == 0 {
		k = len(ranked)
	}
	if k == 0 {
		return 0
	}
	var score float64
	switch m.Kind {
	case Precision:
		score, _ = PrecisionAtK(ranked, relevant, k)
	case Recall:
		score, _ = RecallAtK(ranked, relevant, k)
	case ReciprocalRank:
		score = MRR(ranked, relevant)
	case NDCG:
		score, _ = NDCGAtK(ranked, relevant, k)
	case AP:
		score = AveragePrecision(ranked, relevant)
	case ERR:
		score, _ = ERRAtK(ranked, relevant, k)
	case RBP:
		score, _ = RBPAtK(ranked, relevant, k, m.Persistence)
	case F1:
		score, _ = FMeasureAtK(ranked, relevant, k, m.Beta)
	case Success:
		score, _ = SuccessAtK(ranked, relevant, k)
	case RPrec:
		score = RPrecision(ranked, relevant)
	}
	return score
}
