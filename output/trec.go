package output

import (
	"bufio"
	"fmt"
	"github.com/arclabs561/rank-eval/trec"
	"io"
	"sort"
)

// WriteResults writes a grouped run file back to TREC format, topics
// in sorted order with each topic's results in their grouped order.
// Writing what was parsed reproduces the same records.
func WriteResults(w io.Writer, file *trec.ResultFile) error {
	topics := make([]string, 0, len(file.Results))
	for topic := range file.Results {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	bw := bufio.NewWriter(w)
	for _, topic := range topics {
		for _, res := range file.Results[topic] {
			if _, err := fmt.Fprintln(bw, res); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteQrels writes grouped judgments back to TREC format, topics and
// documents in sorted order.
func WriteQrels(w io.Writer, file *trec.QrelsFile) error {
	topics := make([]string, 0, len(file.Qrels))
	for topic := range file.Qrels {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	bw := bufio.NewWriter(w)
	for _, topic := range topics {
		docs := make([]string, 0, len(file.Qrels[topic]))
		for doc := range file.Qrels[topic] {
			docs = append(docs, doc)
		}
		sort.Strings(docs)
		for _, doc := range docs {
			if _, err := fmt.Fprintln(bw, file.Qrels[topic][doc]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
