package trec

// GroupResults partitions flat run records by topic, keeping the file
// order within each topic. When a topic retrieves the same document
// twice, the later record wins and sits at the position of its last
// occurrence.
func GroupResults(list ResultList) *ResultFile {
	file := NewResultFile()
	seen := make(map[string]map[string]int)
	for _, res := range list {
		docs, ok := seen[res.Topic]
		if !ok {
			docs = make(map[string]int)
			seen[res.Topic] = docs
		}
		if i, dup := docs[res.DocId]; dup {
			file.Results[res.Topic][i] = nil
		}
		docs[res.DocId] = len(file.Results[res.Topic])
		file.Results[res.Topic] = append(file.Results[res.Topic], res)
	}
	for topic, results := range file.Results {
		file.Results[topic] = compact(results)
	}
	return file
}

// GroupQrels partitions flat judgments by topic. Judging the same
// document twice keeps only the last judgment.
func GroupQrels(list QrelList) *QrelsFile {
	file := NewQrelsFile()
	for _, qrel := range list {
		if _, ok := file.Qrels[qrel.Topic]; !ok {
			file.Qrels[qrel.Topic] = make(Qrels)
		}
		file.Qrels[qrel.Topic][qrel.DocId] = qrel
	}
	return file
}

func compact(list ResultList) ResultList {
	out := list[:0]
	for _, res := range list {
		if res != nil {
			out = append(out, res)
		}
	}
	return out
}
