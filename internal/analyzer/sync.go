package analyzer

import (
	"context"

	"github.com/google/uuid"
)

// AnalyzeSync runs a request to completion from a caller that has no context
// of its own. The work is delegated to a goroutine and bounded by the
// configured sync timeout; on expiry the caller gets a TimeoutError while
// the worker drains in the background.
func (e *Engine) AnalyzeSync(req AnalysisRequest) (*AnalysisResult, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Analysis.SyncTimeout)
	defer cancel()

	type outcome struct {
		result *AnalysisResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := e.Analyze(ctx, req)
		done <- outcome{result, err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		e.log.Warn("sync analysis timed out", "request", req.ID, "limit", e.cfg.Analysis.SyncTimeout)
		return nil, &TimeoutError{RequestID: req.ID, Limit: e.cfg.Analysis.SyncTimeout}
	}
}
