package cli

import (
	"time"

	"github.com/schollz/progressbar/v3"
)

// batchProgress renders a progress spinner during directory analysis.
type batchProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newBatchProgress(quiet bool) *batchProgress {
	p := &batchProgress{quiet: quiet}
	if quiet {
		return p
	}
	p.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Analyzing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
	return p
}

func (p *batchProgress) advance(string) {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *batchProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
