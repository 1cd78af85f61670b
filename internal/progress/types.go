package progress

import "time"

// ProgressType identifies which operation a progress indicator tracks
type ProgressType string

const (
	ProgressTypeCapture ProgressType = "CAPTURE"
	ProgressTypeExtract ProgressType = "EXTRACT"
)

// ProgressStatus is the lifecycle state of a progress indicator
type ProgressStatus string

const (
	ProgressStatusIdle      ProgressStatus = "IDLE"
	ProgressStatusRunning   ProgressStatus = "RUNNING"
	ProgressStatusComplete  ProgressStatus = "COMPLETE"
	ProgressStatusError     ProgressStatus = "ERROR"
	ProgressStatusCancelled ProgressStatus = "CANCELLED"
)

// Outcome is the result of handling one descriptor
type Outcome string

const (
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
)

// CaptureStats counts item outcomes
type CaptureStats struct {
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// ProgressInfo is a snapshot of a progress indicator
type ProgressInfo struct {
	Type           ProgressType   `json:"type"`
	Status         ProgressStatus `json:"status"`
	Current        int64          `json:"current"`
	Total          int64          `json:"total"`
	Stage          string         `json:"stage"`
	Message        string         `json:"message"`
	StartTime      time.Time      `json:"start_time"`
	LastUpdateTime time.Time      `json:"last_update_time"`
	EstimatedETA   time.Duration  `json:"estimated_eta"`
	Stats          CaptureStats   `json:"stats"`
}

// UpdateETA estimates the remaining time from the average rate so far
func (pi *ProgressInfo) UpdateETA() {
	if pi.Total <= 0 || pi.Current <= 0 || pi.Status != ProgressStatusRunning {
		pi.EstimatedETA = 0
		return
	}

	elapsed := time.Since(pi.StartTime)
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

// GetPercentage returns completion in the range 0 to 100
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
