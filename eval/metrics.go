package eval

// Metrics is a fixed snapshot of the common measures for one ranked
// list under binary relevance. The field set and its JSON names are
// stable, so snapshots can be serialized and compared across runs.
type Metrics struct {
	PrecisionAt1     float64 `json:"precision_at_1"`
	PrecisionAt5     float64 `json:"precision_at_5"`
	PrecisionAt10    float64 `json:"precision_at_10"`
	RecallAt5        float64 `json:"recall_at_5"`
	RecallAt10       float64 `json:"recall_at_10"`
	MRR              float64 `json:"mrr"`
	NDCGAt5          float64 `json:"ndcg_at_5"`
	NDCGAt10         float64 `json:"ndcg_at_10"`
	AveragePrecision float64 `json:"average_precision"`
	ERRAt10          float64 `json:"err_at_10"`
	RBPAt10          float64 `json:"rbp_at_10"`
	F1At10           float64 `json:"f1_at_10"`
	SuccessAt10      float64 `json:"success_at_10"`
	RPrecision       float64 `json:"r_precision"`
}

// ComputeMetrics fills a snapshot using beta 1 for f1 and the default
// persistence for rbp. Every cutoff here is fixed, so no call can fail.
func ComputeMetrics(ranked []string, relevant RelevanceSet) Metrics {
	var m Metrics
	m.PrecisionAt1, _ = PrecisionAtK(ranked, relevant, 1)
	m.PrecisionAt5, _ = PrecisionAtK(ranked, relevant, 5)
	m.PrecisionAt10, _ = PrecisionAtK(ranked, relevant, 10)
	m.RecallAt5, _ = RecallAtK(ranked, relevant, 5)
	m.RecallAt10, _ = RecallAtK(ranked, relevant, 10)
	m.MRR = MRR(ranked, relevant)
	m.NDCGAt5, _ = NDCGAtK(ranked, relevant, 5)
	m.NDCGAt10, _ = NDCGAtK(ranked, relevant, 10)
	m.AveragePrecision = AveragePrecision(ranked, relevant)
	m.ERRAt10, _ = ERRAtK(ranked, relevant, 10)
	m.RBPAt10, _ = RBPAtK(ranked, relevant, 10, DefaultPersistence)
	m.F1At10, _ = FMeasureAtK(ranked, relevant, 10, DefaultBeta)
	m.SuccessAt10, _ = SuccessAtK(ranked, relevant, 10)
	m.RPrecision = RPrecision(ranked, relevant)
	return m
}
