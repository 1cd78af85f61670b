package progress

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/rs/zerolog"
)

// Reporter receives progress events from a capture run
type Reporter interface {
	Begin(total int64, stage string)
	AddTotal(n int64)
	SetStage(stage string)
	Advance(outcome Outcome, message string)
	Finish(status ProgressStatus, message string)
}

// ProgressDisplayConfig configures the periodic display
type ProgressDisplayConfig struct {
	DisplayInterval   time.Duration
	EnableProgress    bool
	ShowETAEstimation bool
}

// DisplayConfigFromConfig maps the file configuration onto display settings
func DisplayConfigFromConfig(cfg config.ProgressConfig) *ProgressDisplayConfig {
	interval := cfg.GetDisplayIntervalDuration()
	if interval <= 0 {
		interval = time.Duration(config.DefaultProgressDisplayIntervalSecs) * time.Second
	}
	return &ProgressDisplayConfig{
		DisplayInterval:   interval,
		EnableProgress:    cfg.EnableProgress,
		ShowETAEstimation: cfg.ShowETAEstimation,
	}
}

// ProgressDisplayManager owns one Progress and logs it on a ticker
type ProgressDisplayManager struct {
	progress       *Progress
	mutex          sync.Mutex
	logger         zerolog.Logger
	config         *ProgressDisplayConfig
	displayTicker  *time.Ticker
	isRunning      bool
	cancel         context.CancelFunc
	done           chan struct{}
	lastDisplayed  string
	triggerDisplay chan struct{}
}

// NewProgressDisplayManager creates a new display manager
func NewProgressDisplayManager(progressType ProgressType, logger zerolog.Logger, cfg *ProgressDisplayConfig) *ProgressDisplayManager {
	if cfg == nil {
		cfg = &ProgressDisplayConfig{
			DisplayInterval:   3 * time.Second,
			EnableProgress:    true,
			ShowETAEstimation: true,
		}
	}

	return &ProgressDisplayManager{
		progress:       NewProgress(progressType),
		logger:         logger.With().Str("component", "ProgressDisplay").Logger(),
		config:         cfg,
		triggerDisplay: make(chan struct{}, 1),
	}
}

// Start launches the display goroutine
func (pdm *ProgressDisplayManager) Start() {
	pdm.mutex.Lock()
	defer pdm.mutex.Unlock()

	if pdm.isRunning {
		return
	}
	if !pdm.config.EnableProgress {
		pdm.logger.Debug().Msg("Progress display disabled in configuration")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	pdm.cancel = cancel
	pdm.done = make(chan struct{})
	pdm.isRunning = true
	pdm.displayTicker = time.NewTicker(pdm.config.DisplayInterval)

	go pdm.displayLoop(ctx, pdm.displayTicker, pdm.done)
}

// Stop halts the display goroutine after printing the final state
func (pdm *ProgressDisplayManager) Stop() {
	pdm.mutex.Lock()
	if !pdm.isRunning {
		pdm.mutex.Unlock()
		return
	}
	pdm.isRunning = false
	pdm.cancel()
	pdm.displayTicker.Stop()
	done := pdm.done
	pdm.mutex.Unlock()

	<-done
	pdm.displayProgress()
}

// Info returns the current progress state
func (pdm *ProgressDisplayManager) Info() ProgressInfo {
	return pdm.progress.Info()
}

func (pdm *ProgressDisplayManager) Begin(total int64, stage string) {
	pdm.progress.Begin(total, stage)
	pdm.triggerImmediateDisplay()
}

func (pdm *ProgressDisplayManager) AddTotal(n int64) {
	pdm.progress.AddTotal(n)
}

func (pdm *ProgressDisplayManager) SetStage(stage string) {
	pdm.progress.SetStage(stage)
	pdm.triggerImmediateDisplay()
}

func (pdm *ProgressDisplayManager) Advance(outcome Outcome, message string) {
	pdm.progress.Advance(outcome, message)
}

func (pdm *ProgressDisplayManager) Finish(status ProgressStatus, message string) {
	pdm.progress.SetStatus(status, message)
	pdm.triggerImmediateDisplay()
}

func (pdm *ProgressDisplayManager) triggerImmediateDisplay() {
	select {
	case pdm.triggerDisplay <- struct{}{}:
	default:
	}
}

func (pdm *ProgressDisplayManager) displayLoop(ctx context.Context, ticker *time.Ticker, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pdm.displayProgress()
		case <-pdm.triggerDisplay:
			pdm.displayProgress()
		}
	}
}

// displayProgress logs the current state when it changed since the last line
func (pdm *ProgressDisplayManager) displayProgress() {
	output := pdm.FormatProgress(pdm.progress.Info())

	pdm.mutex.Lock()
	defer pdm.mutex.Unlock()
	if output != "" && output != pdm.lastDisplayed {
		pdm.logger.Info().Msg(output)
		pdm.lastDisplayed = output
	}
}

// FormatProgress renders info as a single status line
func (pdm *ProgressDisplayManager) FormatProgress(info ProgressInfo) string {
	if info.Status == ProgressStatusIdle {
		return ""
	}

	label := "📦 Capture"
	if info.Type == ProgressTypeExtract {
		label = "🔗 Extract"
	}

	percentage := info.GetPercentage()

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s: %s %s %.1f%% (%d/%d)",
		label, getStatusIcon(info.Status), createProgressBar(percentage, 20), percentage, info.Current, info.Total))

	if info.Stage != "" {
		builder.WriteString(" | " + info.Stage)
	}

	builder.WriteString(fmt.Sprintf(" | D:%d S:%d F:%d", info.Stats.Downloaded, info.Stats.Skipped, info.Stats.Failed))

	if pdm.config.ShowETAEstimation && info.EstimatedETA > 0 && info.Status == ProgressStatusRunning {
		builder.WriteString(" | ETA: " + formatDuration(info.EstimatedETA))
	}

	if info.Message != "" {
		builder.WriteString(" | " + info.Message)
	}

	return builder.String()
}

func getStatusIcon(status ProgressStatus) string {
	switch status {
	case ProgressStatusRunning:
		return "⏳"
	case ProgressStatusComplete:
		return "✅"
	case ProgressStatusError:
		return "❌"
	case ProgressStatusCancelled:
		return "🚫"
	case ProgressStatusIdle:
		return "💤"
	default:
		return "❓"
	}
}

func createProgressBar(percentage float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int((percentage / 100.0) * float64(width))
	if filled > width {
		filled = width
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}

// NopReporter discards progress events
type NopReporter struct{}

func (NopReporter) Begin(int64, string)           {}
func (NopReporter) AddTotal(int64)                {}
func (NopReporter) SetStage(string)               {}
func (NopReporter) Advance(Outcome, string)       {}
func (NopReporter) Finish(ProgressStatus, string) {}
