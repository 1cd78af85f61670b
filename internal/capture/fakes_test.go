package capture

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/extractor"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snapshot *models.DocumentSnapshot
	err      error
	closed   bool
}

func (f *fakeSource) Snapshot(_ context.Context, target string) (*models.DocumentSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	snap := *f.snapshot
	if snap.URL == "" {
		snap.URL = target
	}
	return &snap, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

type fakeFetcher struct {
	mu      sync.Mutex
	bodies  map[string]string
	errs    map[string]error
	calls   []string
	onFetch func(url string)
}

func newFakeFetcher(bodies map[string]string) *fakeFetcher {
	return &fakeFetcher{bodies: bodies, errs: map[string]error{}}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	hook := f.onFetch
	f.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, errorwrapper.NewHTTPErrorWithURL(404, "Not Found", url)
	}
	return []byte(body), nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

type memorySink struct {
	files map[string][]byte
	fail  map[string]bool
}

func newMemorySink() *memorySink {
	return &memorySink{files: map[string][]byte{}, fail: map[string]bool{}}
}

func (m *memorySink) Write(_ context.Context, relPath string, data []byte) (string, error) {
	if m.fail[relPath] {
		return "", errors.New("disk full")
	}
	m.files[relPath] = append([]byte(nil), data...)
	return "mem/" + relPath, nil
}

func (m *memorySink) String(relPath string) string {
	return string(m.files[relPath])
}

type serviceFixture struct {
	service *Service
	source  *fakeSource
	fetcher *fakeFetcher
	sink    *memorySink
}

func newFixture(t *testing.T, pageHTML string, bodies map[string]string, mutate func(*config.CaptureConfig)) *serviceFixture {
	t.Helper()

	cfg := config.NewDefaultCaptureConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	f := &serviceFixture{
		source:  &fakeSource{snapshot: &models.DocumentSnapshot{HTML: pageHTML}},
		fetcher: newFakeFetcher(bodies),
		sink:    newMemorySink(),
	}

	service, err := NewService(cfg, Dependencies{
		Source:    f.source,
		Extractor: extractor.NewExtractor(config.NewDefaultExtractorConfig(), zerolog.Nop()),
		Fetcher:   f.fetcher,
		Sink:      f.sink,
	}, zerolog.Nop())
	require.NoError(t, err)
	f.service = service
	return f
}
