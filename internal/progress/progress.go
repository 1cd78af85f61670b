package progress

import (
	"sync"
	"time"
)

// Progress encapsulates a single progress indicator.
type Progress struct {
	mu   sync.RWMutex
	info ProgressInfo
}

// NewProgress creates a new Progress indicator.
func NewProgress(progressType ProgressType) *Progress {
	return &Progress{
		info: ProgressInfo{
			Type:   progressType,
			Status: ProgressStatusIdle,
		},
	}
}

// Info returns a copy of the ProgressInfo.
func (p *Progress) Info() ProgressInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// Begin resets the indicator for a run of total items.
func (p *Progress) Begin(total int64, stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	p.info.Status = ProgressStatusRunning
	p.info.Current = 0
	p.info.Total = total
	p.info.Stage = stage
	p.info.Message = ""
	p.info.Stats = CaptureStats{}
	p.info.StartTime = now
	p.info.LastUpdateTime = now
	p.info.EstimatedETA = 0
}

// AddTotal grows the number of expected items, e.g. when a linked page adds assets.
func (p *Progress) AddTotal(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Total += n
	p.info.UpdateETA()
}

// SetStage changes the stage label without counting an item.
func (p *Progress) SetStage(stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Stage = stage
	p.info.LastUpdateTime = time.Now()
}

// Advance counts one finished item.
func (p *Progress) Advance(outcome Outcome, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info.Status == ProgressStatusIdle {
		p.info.Status = ProgressStatusRunning
		p.info.StartTime = time.Now()
	}

	switch outcome {
	case OutcomeDownloaded:
		p.info.Stats.Downloaded++
	case OutcomeSkipped:
		p.info.Stats.Skipped++
	case OutcomeFailed:
		p.info.Stats.Failed++
	}

	p.info.Current++
	p.info.Message = message
	p.info.LastUpdateTime = time.Now()
	p.info.UpdateETA()
}

// SetStatus sets the progress status.
func (p *Progress) SetStatus(status ProgressStatus, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Status = status
	p.info.Message = message
	p.info.LastUpdateTime = time.Now()
	if status != ProgressStatusRunning {
		p.info.EstimatedETA = 0
	}
}
