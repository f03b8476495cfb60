// Package rankeval evaluates ranked retrieval runs against relevance
// judgments in the manner of trec_eval. Subpackages provide TREC run and
// qrels parsing (trec), effectiveness metrics and batched evaluation
// (eval), paired significance testing between systems (stats), corpus
// validation (dataset) and report formatting (output).
package rankeval

import "github.com/pkg/errors"

// ErrInvalidParameter reports a parameter outside its domain: a cutoff
// below 1, a beta or persistence outside its range, an unknown measure
// name, or mismatched sample lengths in a statistical test. Functions
// wrap it with context, so test for it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")
