package progress

import "time"

// ProgressStatus is the state of a single transfer
type ProgressStatus string

const (
	ProgressStatusIdle     ProgressStatus = "IDLE"
	ProgressStatusRunning  ProgressStatus = "RUNNING"
	ProgressStatusComplete ProgressStatus = "COMPLETE"
	ProgressStatusError    ProgressStatus = "ERROR"
)

// ProgressInfo describes one transfer
type ProgressInfo struct {
	Label          string         `json:"label"`
	Status         ProgressStatus `json:"status"`
	Current        int64          `json:"current"`
	Total          int64          `json:"total"` // 0 when unknown
	Message        string         `json:"message,omitempty"`
	StartTime      time.Time      `json:"start_time"`
	LastUpdateTime time.Time      `json:"last_update_time"`
	EstimatedETA   time.Duration  `json:"estimated_eta"`
}

// UpdateETA estimates the remaining time from the average rate so far
func (pi *ProgressInfo) UpdateETA() {
	if pi.Total <= 0 || pi.Current <= 0 || pi.Status != ProgressStatusRunning {
		pi.EstimatedETA = 0
		return
	}

	elapsed := pi.LastUpdateTime.Sub(pi.StartTime)
	if elapsed <= 0 {
		pi.EstimatedETA = 0
		return
	}

	rate := float64(pi.Current) / elapsed.Seconds()
	remaining := float64(pi.Total - pi.Current)
	if rate <= 0 || remaining <= 0 {
		pi.EstimatedETA = 0
		return
	}

	pi.EstimatedETA = time.Duration(remaining / rate * float64(time.Second))
}

// GetPercentage returns completion in percent, 0 when the total is unknown
func (pi *ProgressInfo) GetPercentage() float64 {
	if pi.Total <= 0 {
		return 0.0
	}
	percentage := float64(pi.Current) * 100 / float64(pi.Total)
	if percentage > 100 {
		return 100.0
	}
	return percentage
}
