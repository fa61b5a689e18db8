package progress

import (
	"sync"
	"time"
)

// Progress tracks the byte count of one transfer.
type Progress struct {
	mu   sync.RWMutex
	info ProgressInfo
	now  func() time.Time
}

// NewProgress creates an idle tracker.
func NewProgress() *Progress {
	return &Progress{
		info: ProgressInfo{Status: ProgressStatusIdle},
		now:  time.Now,
	}
}

// Info returns a copy of the ProgressInfo.
func (p *Progress) Info() ProgressInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// Begin resets the tracker for a new transfer.
func (p *Progress) Begin(label string, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.info = ProgressInfo{
		Label:          label,
		Status:         ProgressStatusRunning,
		Total:          total,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Add advances the byte count by n.
func (p *Progress) Add(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Current += n
	p.info.LastUpdateTime = p.now()
	p.info.UpdateETA()
}

// Finish marks the transfer complete, or failed when err is non-nil.
func (p *Progress) Finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.LastUpdateTime = p.now()
	p.info.EstimatedETA = 0
	if err != nil {
		p.info.Status = ProgressStatusError
		p.info.Message = err.Error()
		return
	}
	p.info.Status = ProgressStatusComplete
}
