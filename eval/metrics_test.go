package eval_test

import (
	"encoding/json"
	"github.com/arclabs561/rank-eval/eval"
	"math"
	"strings"
	"testing"
)

func TestComputeMetrics(t *testing.T) {
	m := eval.ComputeMetrics(ranked, relevant)
	almost(t, "precision_at_1", m.PrecisionAt1, 1)
	almost(t, "precision_at_5", m.PrecisionAt5, 0.5)
	almost(t, "precision_at_10", m.PrecisionAt10, 0.5)
	almost(t, "recall_at_5", m.RecallAt5, 1)
	almost(t, "recall_at_10", m.RecallAt10, 1)
	almost(t, "mrr", m.MRR, 1)
	almost(t, "ndcg_at_10", m.NDCGAt10, 1.5/(1+1/math.Log2(3)))
	almost(t, "average_precision", m.AveragePrecision, (1+2.0/3)/2)
	almost(t, "err_at_10", m.ERRAt10, 1)
	almost(t, "rbp_at_10", m.RBPAt10, 0.2*(1+0.8*0.8))
	almost(t, "f1_at_10", m.F1At10, 2*0.5*1/(0.5+1))
	almost(t, "success_at_10", m.SuccessAt10, 1)
	almost(t, "r_precision", m.RPrecision, 0.5)
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := eval.ComputeMetrics(nil, eval.RelevanceSet{})
	if m != (eval.Metrics{}) {
		t.Errorf("expected all zeroes for an empty list, got %+v", m)
	}
}

func TestMetricsJSONNames(t *testing.T) {
	v, err := json.Marshal(eval.ComputeMetrics(ranked, relevant))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"precision_at_10", "ndcg_at_5", "average_precision", "r_precision", "success_at_10"} {
		if !strings.Contains(string(v), name) {
			t.Errorf("expected field %q in %s", name, v)
		}
	}
}
