package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_New(t *testing.T) {
	p := NewProgress(ProgressTypeCapture)
	require.NotNil(t, p)
	info := p.Info()
	assert.Equal(t, ProgressTypeCapture, info.Type)
	assert.Equal(t, ProgressStatusIdle, info.Status)
}

func TestProgress_BeginAndAdvance(t *testing.T) {
	p := NewProgress(ProgressTypeCapture)
	p.Begin(4, "downloading assets")

	p.Advance(OutcomeDownloaded, "assets/css/main.css")
	p.Advance(OutcomeSkipped, "http://insecure.example.com/x.js")
	p.Advance(OutcomeFailed, "https://example.com/missing.png")

	info := p.Info()
	assert.Equal(t, ProgressStatusRunning, info.Status)
	assert.Equal(t, int64(3), info.Current)
	assert.Equal(t, int64(4), info.Total)
	assert.Equal(t, "downloading assets", info.Stage)
	assert.Equal(t, "https://example.com/missing.png", info.Message)
	assert.Equal(t, CaptureStats{Downloaded: 1, Skipped: 1, Failed: 1}, info.Stats)
	assert.InDelta(t, 75.0, info.GetPercentage(), 0.001)
	assert.NotZero(t, info.StartTime)
}

func TestProgress_BeginResetsCounters(t *testing.T) {
	p := NewProgress(ProgressTypeCapture)
	p.Begin(2, "first")
	p.Advance(OutcomeDownloaded, "")
	p.Begin(5, "second")

	info := p.Info()
	assert.Zero(t, info.Current)
	assert.Equal(t, int64(5), info.Total)
	assert.Equal(t, CaptureStats{}, info.Stats)
}

func TestProgress_AddTotal(t *testing.T) {
	p := NewProgress(ProgressTypeCapture)
	p.Begin(2, "assets")
	p.AddTotal(3)
	assert.Equal(t, int64(5), p.Info().Total)
}

func TestProgress_SetStatus(t *testing.T) {
	p := NewProgress(ProgressTypeExtract)
	p.SetStatus(ProgressStatusComplete, "done")

	info := p.Info()
	assert.Equal(t, ProgressStatusComplete, info.Status)
	assert.Equal(t, "done", info.Message)
	assert.Zero(t, info.EstimatedETA)
}

func TestProgress_ConcurrentAdvance(t *testing.T) {
	p := NewProgress(ProgressTypeCapture)
	p.Begin(100, "assets")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Advance(OutcomeDownloaded, "")
		}()
	}
	wg.Wait()

	info := p.Info()
	assert.Equal(t, int64(100), info.Current)
	assert.Equal(t, 100, info.Stats.Downloaded)
}

func TestProgressInfo_GetPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		total   int64
		want    float64
	}{
		{"no total", 5, 0, 0},
		{"half", 5, 10, 50},
		{"over", 12, 10, 100},
	}

	for _, tt := range tests {
		info := ProgressInfo{Current: tt.current, Total: tt.total}
		assert.Equal(t, tt.want, info.GetPercentage(), tt.name)
	}
}

func TestProgressInfo_UpdateETA(t *testing.T) {
	info := ProgressInfo{
		Status:    ProgressStatusRunning,
		Current:   5,
		Total:     10,
		StartTime: time.Now().Add(-5 * time.Second),
	}
	info.UpdateETA()
	assert.InDelta(t, float64(5*time.Second), float64(info.EstimatedETA), float64(500*time.Millisecond))

	info.Status = ProgressStatusComplete
	info.UpdateETA()
	assert.Zero(t, info.EstimatedETA)
}

func TestFormatProgress(t *testing.T) {
	pdm := NewProgressDisplayManager(ProgressTypeCapture, zerolog.Nop(), &ProgressDisplayConfig{
		DisplayInterval: time.Second,
		EnableProgress:  true,
	})

	assert.Empty(t, pdm.FormatProgress(ProgressInfo{Status: ProgressStatusIdle}))

	out := pdm.FormatProgress(ProgressInfo{
		Type:    ProgressTypeCapture,
		Status:  ProgressStatusRunning,
		Current: 5,
		Total:   10,
		Stage:   "assets",
		Message: "assets/js/app.js",
		Stats:   CaptureStats{Downloaded: 4, Skipped: 1},
	})
	assert.True(t, strings.HasPrefix(out, "📦 Capture: ⏳ ["))
	assert.Contains(t, out, "50.0% (5/10)")
	assert.Contains(t, out, "| assets |")
	assert.Contains(t, out, "D:4 S:1 F:0")
	assert.True(t, strings.HasSuffix(out, "| assets/js/app.js"))

	extract := pdm.FormatProgress(ProgressInfo{Type: ProgressTypeExtract, Status: ProgressStatusComplete})
	assert.True(t, strings.HasPrefix(extract, "🔗 Extract: ✅"))
}

func TestCreateProgressBar(t *testing.T) {
	assert.Equal(t, "[██████████░░░░░░░░░░]", createProgressBar(50, 20))
	assert.Equal(t, "[████]", createProgressBar(150, 4))
	assert.Equal(t, "", createProgressBar(50, 0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30s", formatDuration(30*time.Second))
	assert.Equal(t, "5m", formatDuration(5*time.Minute))
	assert.Equal(t, "2.0h", formatDuration(2*time.Hour))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgressDisplayManager_StartStop(t *testing.T) {
	out := &syncBuffer{}
	logger := zerolog.New(out)

	pdm := NewProgressDisplayManager(ProgressTypeCapture, logger, &ProgressDisplayConfig{
		DisplayInterval: 10 * time.Millisecond,
		EnableProgress:  true,
	})
	pdm.Start()
	pdm.Start()

	pdm.Begin(2, "assets")
	pdm.Advance(OutcomeDownloaded, "a.css")
	pdm.Advance(OutcomeDownloaded, "b.js")
	pdm.Finish(ProgressStatusComplete, "capture finished")
	pdm.Stop()
	pdm.Stop()

	assert.Contains(t, out.String(), "capture finished")
	assert.Contains(t, out.String(), "(2/2)")
	assert.Equal(t, ProgressStatusComplete, pdm.Info().Status)
}

func TestProgressDisplayManager_Disabled(t *testing.T) {
	out := &syncBuffer{}
	pdm := NewProgressDisplayManager(ProgressTypeCapture, zerolog.New(out), &ProgressDisplayConfig{
		DisplayInterval: time.Second,
		EnableProgress:  false,
	})
	pdm.Start()
	pdm.Begin(1, "assets")
	pdm.Advance(OutcomeDownloaded, "a.css")
	pdm.Stop()

	assert.Empty(t, out.String())
	assert.Equal(t, int64(1), pdm.Info().Current)
}

func TestDisplayConfigFromConfig(t *testing.T) {
	cfg := config.NewDefaultProgressConfig()
	cfg.DisplayInterval = 0

	display := DisplayConfigFromConfig(cfg)
	assert.Equal(t, 3*time.Second, display.DisplayInterval)
	assert.True(t, display.EnableProgress)
}

func TestNopReporter(t *testing.T) {
	var r Reporter = NopReporter{}
	r.Begin(1, "x")
	r.AddTotal(1)
	r.SetStage("y")
	r.Advance(OutcomeSkipped, "z")
	r.Finish(ProgressStatusComplete, "")
}
