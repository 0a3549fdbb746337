package report

import (
	"github.com/roach88/regionsync/internal/syncer"
)

// statuses lists every status in reporting order.
var statuses = []syncer.Status{
	syncer.StatusWritten,
	syncer.StatusUnchanged,
	syncer.StatusNoRecords,
	syncer.StatusStale,
	syncer.StatusNoSource,
	syncer.StatusNoTarget,
	syncer.StatusBadExtension,
	syncer.StatusNoDelimiters,
	syncer.StatusFailed,
}

// Batch converts a sync report into a canonical-JSON-ready value:
//
//	{"run_id": ..., "check": bool, "results": [...], "summary": {...}}
//
// Each result carries strategy, source, target, status and records, plus
// "error" for failing statuses. The summary counts results per status,
// omitting zero counts.
func Batch(runID string, check bool, rep *syncer.Report) map[string]any {
	results := make([]any, 0, len(rep.Results))
	for _, res := range rep.Results {
		results = append(results, Result(res))
	}

	summary := map[string]any{
		"total":  len(rep.Results),
		"failed": rep.Failed(),
	}
	for _, s := range statuses {
		if n := rep.Count(s); n > 0 {
			summary[string(s)] = n
		}
	}

	out := map[string]any{
		"check":   check,
		"results": results,
		"summary": summary,
	}
	if runID != "" {
		out["run_id"] = runID
	}
	return out
}

// Result converts one pair's outcome.
func Result(res syncer.Result) map[string]any {
	m := map[string]any{
		"strategy": res.Strategy,
		"source":   res.Source,
		"target":   res.Target,
		"status":   string(res.Status),
		"records":  res.Records,
	}
	if res.Err != nil {
		m["error"] = res.Err.Error()
	}
	return m
}
