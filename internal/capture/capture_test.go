package capture

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const target = "https://example.com/"

func skipReasons(m *models.Manifest) map[string]string {
	out := map[string]string{}
	for _, s := range m.Skipped {
		out[s.URL] = s.Reason
	}
	return out
}

func downloadedFiles(m *models.Manifest) []string {
	out := []string{}
	for _, d := range m.Downloaded {
		out = append(out, d.Filename)
	}
	return out
}

func TestCaptureFull_DownloadsAndSkips(t *testing.T) {
	page := `<html><head>
<link rel="stylesheet" href="https://example.com/css/main.css">
<script src="https://cdn.example.com/js/app.js"></script>
<script src="http://insecure.example.com/x.js"></script>
</head><body>
<img src="https://example.com/img/logo.png">
<img src="https://example.com/img/photo.webp">
</body></html>`

	f := newFixture(t, page, map[string]string{
		"https://example.com/css/main.css":  "body{}",
		"https://cdn.example.com/js/app.js": "console.log(1)",
		"https://example.com/img/logo.png":  "PNG",
	}, nil)

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, result.Cancelled)

	assert.Equal(t, []string{
		"index.html",
		"assets/css/main.css",
		"assets/js/app.js",
		"assets/images/logo.png",
	}, downloadedFiles(result.Manifest))

	reasons := skipReasons(result.Manifest)
	assert.Equal(t, "non-secure transport: http", reasons["http://insecure.example.com/x.js"])
	assert.Equal(t, ReasonUnsupportedKind, reasons["https://example.com/img/photo.webp"])

	assert.NotContains(t, f.fetcher.Calls(), "http://insecure.example.com/x.js")
	assert.NotContains(t, f.fetcher.Calls(), "https://example.com/img/photo.webp")

	assert.Equal(t, "body{}", f.sink.String("assets/css/main.css"))
	index := f.sink.String("index.html")
	assert.Contains(t, index, `href="assets/css/main.css"`)
	assert.Contains(t, index, `src="assets/js/app.js"`)
	assert.Contains(t, index, `src="assets/images/logo.png"`)

	assert.Equal(t, []string{"index.html"}, result.Manifest.Directories[models.DirectoryHTML])
	assert.Equal(t, []string{"assets/css/main.css"}, result.Manifest.Directories[models.DirectoryCSS])
	assert.Equal(t, []string{"assets/js/app.js"}, result.Manifest.Directories[models.DirectoryJS])
	assert.Equal(t, []string{"assets/images/logo.png"}, result.Manifest.Directories[models.DirectoryImages])
}

func TestCaptureFull_WritesManifestJSON(t *testing.T) {
	f := newFixture(t, `<img src="https://example.com/a.png">`, map[string]string{
		"https://example.com/a.png": "A",
	}, nil)

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "mem/download_report.json", result.ManifestPath)

	raw := f.sink.files["download_report.json"]
	require.NotEmpty(t, raw)
	assert.True(t, strings.Contains(string(raw), "\n  \"downloaded\""), "manifest is indented by two spaces")

	var decoded struct {
		Downloaded  []map[string]string `json:"downloaded"`
		Skipped     []map[string]string `json:"skipped"`
		Directories map[string][]string `json:"directories"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Downloaded, 2)
	assert.Equal(t, "success", decoded.Downloaded[1]["status"])
	assert.Equal(t, "IMAGE", decoded.Downloaded[1]["type"])
	assert.Empty(t, decoded.Skipped)
	assert.Contains(t, decoded.Directories, "assets/css")
}

func TestCaptureFull_DownloadFailureContinues(t *testing.T) {
	page := `<img src="https://example.com/missing.png"><img src="https://example.com/ok.png">`
	f := newFixture(t, page, map[string]string{"https://example.com/ok.png": "OK"}, nil)

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)

	reason := skipReasons(result.Manifest)["https://example.com/missing.png"]
	assert.Contains(t, reason, "download of 'https://example.com/missing.png'")
	assert.Contains(t, reason, "404")
	assert.Contains(t, downloadedFiles(result.Manifest), "assets/images/ok.png")
}

func TestCaptureFull_WriteFailureIsRecorded(t *testing.T) {
	f := newFixture(t, `<img src="https://example.com/a.png">`, map[string]string{"https://example.com/a.png": "A"}, nil)
	f.sink.fail["assets/images/a.png"] = true

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)
	assert.Contains(t, skipReasons(result.Manifest)["https://example.com/a.png"], "disk full")
}

func TestCaptureFull_LocalPathCollision(t *testing.T) {
	page := `<img src="https://a.example.com/logo.png"><img src="https://b.example.com/logo.png">`
	f := newFixture(t, page, map[string]string{
		"https://a.example.com/logo.png": "A",
		"https://b.example.com/logo.png": "B",
	}, nil)

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, ReasonPathCollision, skipReasons(result.Manifest)["https://b.example.com/logo.png"])
	assert.Equal(t, "A", f.sink.String("assets/images/logo.png"))
	assert.NotContains(t, f.fetcher.Calls(), "https://b.example.com/logo.png")
}

func TestCaptureFull_DownloadUnknown(t *testing.T) {
	f := newFixture(t, `<img src="https://example.com/photo.webp">`, map[string]string{
		"https://example.com/photo.webp": "WEBP",
	}, func(c *config.CaptureConfig) { c.DownloadUnknown = true })

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)
	assert.Contains(t, downloadedFiles(result.Manifest), "assets/images/photo.webp")
}

func TestCaptureFull_LinkedPages(t *testing.T) {
	page := `<link rel="stylesheet" href="https://example.com/css/main.css">
<a href="https://example.com/docs/guide.html">Guide</a>`
	guide := `<html><head><link rel="stylesheet" href="https://example.com/css/main.css"></head>
<body><img src="https://example.com/img/new.png"><a href="https://example.com/other.html">Other</a></body></html>`

	f := newFixture(t, page, map[string]string{
		"https://example.com/css/main.css":    "body{}",
		"https://example.com/docs/guide.html": guide,
		"https://example.com/img/new.png":     "PNG",
		"https://example.com/other.html":      "<p>never</p>",
	}, nil)

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/css/main.css",
		"https://example.com/docs/guide.html",
		"https://example.com/img/new.png",
	}, f.fetcher.Calls())

	assert.Contains(t, f.sink.String("index.html"), `href="docs/guide.html"`)

	linked := f.sink.String("docs/guide.html")
	assert.Contains(t, linked, `href="../assets/css/main.css"`)
	assert.Contains(t, linked, `src="../assets/images/new.png"`)
	assert.Contains(t, linked, `href="https://example.com/other.html"`)

	assert.Equal(t, []string{"index.html", "docs/guide.html"}, result.Manifest.Directories[models.DirectoryHTML])
	assert.Contains(t, downloadedFiles(result.Manifest), "assets/images/new.png")
}

func TestCaptureFull_LinkedPagesDisabled(t *testing.T) {
	f := newFixture(t, `<a href="https://example.com/about.html">About</a>`, map[string]string{
		"https://example.com/about.html": "<p>about</p>",
	}, func(c *config.CaptureConfig) { c.FollowLinkedPages = false })

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, ReasonLinkedPagesDisabled, skipReasons(result.Manifest)["https://example.com/about.html"])
	assert.Empty(t, f.fetcher.Calls())
}

func TestCaptureFull_SelfLinkIsNotRecaptured(t *testing.T) {
	f := newFixture(t, `<a href="https://example.com/index.html#top">Top</a>`, nil, nil)
	f.source.snapshot.URL = "https://example.com/index.html"

	result, err := f.service.CaptureFull(context.Background(), "https://example.com/index.html")
	require.NoError(t, err)
	assert.Empty(t, f.fetcher.Calls())
	assert.Equal(t, []string{"index.html"}, downloadedFiles(result.Manifest))
}

func TestCaptureFull_AnchorToPageItself(t *testing.T) {
	page := `<a href="https://example.com/about.html">About</a><a href="https://example.com/docs/">Docs</a>`
	f := newFixture(t, page, nil, nil)
	f.source.snapshot.URL = "https://example.com/about.html"

	result, err := f.service.CaptureFull(context.Background(), "https://example.com/about.html")
	require.NoError(t, err)
	assert.Empty(t, f.fetcher.Calls())

	index := f.sink.String("index.html")
	assert.Contains(t, index, `href="index.html"`)
	assert.Contains(t, index, `href="https://example.com/docs/"`)
	assert.NotContains(t, index, "default.html")
	assert.NotContains(t, index, `href="about.html"`)

	assert.Equal(t, []string{"index.html"}, downloadedFiles(result.Manifest))
	assert.Equal(t, ReasonUnsupportedKind, skipReasons(result.Manifest)["https://example.com/docs/"])
	assert.Len(t, result.Manifest.Skipped, 1)
}

func TestCaptureFull_HomeLinkPointsAtIndex(t *testing.T) {
	page := `<a href="https://example.com/">Home</a><a href="https://example.com">Home</a>`
	f := newFixture(t, page, nil, nil)

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)
	assert.Empty(t, f.fetcher.Calls())
	assert.Equal(t, 2, strings.Count(f.sink.String("index.html"), `href="index.html"`))
	assert.Equal(t, []string{"index.html"}, downloadedFiles(result.Manifest))
	assert.Empty(t, result.Manifest.Skipped)
}

func TestCaptureFull_SkippedTargetsKeepTheirReference(t *testing.T) {
	page := `<img src="https://example.com/img/photo.webp"><a href="https://example.com/about.html">About</a>`
	f := newFixture(t, page, nil, func(c *config.CaptureConfig) { c.FollowLinkedPages = false })

	_, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)

	index := f.sink.String("index.html")
	assert.Contains(t, index, `src="https://example.com/img/photo.webp"`)
	assert.Contains(t, index, `href="https://example.com/about.html"`)
}

func TestCaptureFull_ScanStylesheets(t *testing.T) {
	css := `body { background: url("../img/bg.png") }
.x { background-image: url(data:image/png;base64,AA) }
.y { background: url(http://insecure.example.com/i.png) }`

	f := newFixture(t, `<link rel="stylesheet" href="https://example.com/css/main.css">`, map[string]string{
		"https://example.com/css/main.css": css,
		"https://example.com/img/bg.png":   "PNG",
	}, func(c *config.CaptureConfig) { c.ScanStylesheets = true })

	result, err := f.service.CaptureFull(context.Background(), target)
	require.NoError(t, err)

	stored := f.sink.String("assets/css/main.css")
	assert.Contains(t, stored, `url("../images/bg.png")`)
	assert.Contains(t, stored, `url(data:image/png;base64,AA)`)
	assert.Contains(t, stored, `url(http://insecure.example.com/i.png)`)

	assert.Equal(t, "PNG", f.sink.String("assets/images/bg.png"))
	assert.Equal(t, "non-secure transport: http", skipReasons(result.Manifest)["http://insecure.example.com/i.png"])
}

func TestCaptureFull_Cancelled(t *testing.T) {
	page := `<img src="https://example.com/a.png"><img src="https://example.com/b.png"><img src="https://example.com/c.png">`
	f := newFixture(t, page, map[string]string{
		"https://example.com/a.png": "A",
		"https://example.com/b.png": "B",
		"https://example.com/c.png": "C",
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.fetcher.onFetch = func(string) { cancel() }

	result, err := f.service.CaptureFull(ctx, target)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)

	reasons := skipReasons(result.Manifest)
	assert.Equal(t, ReasonCancelled, reasons["https://example.com/b.png"])
	assert.Equal(t, ReasonCancelled, reasons["https://example.com/c.png"])
	assert.Len(t, f.fetcher.Calls(), 1)
	assert.NotEmpty(t, f.sink.files["download_report.json"])
}

func TestCaptureFull_SnapshotFailure(t *testing.T) {
	f := newFixture(t, "", nil, nil)
	f.source.err = errors.New("browser crashed")

	result, err := f.service.CaptureFull(context.Background(), target)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, models.ErrExtractionFailed))

	var failure *models.ExtractionFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, target, failure.Target)
	assert.Empty(t, f.sink.files)
}

func TestCaptureFull_EmptyDocument(t *testing.T) {
	f := newFixture(t, "   ", nil, nil)

	_, err := f.service.CaptureFull(context.Background(), target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrExtractionFailed))
	assert.NotContains(t, f.sink.files, "download_report.json")
}

func TestExtractLinks(t *testing.T) {
	page := `<link rel="stylesheet" href="https://example.com/a.css"><script src="http://insecure.example.com/b.js"></script>
<img src="https://example.com/c.png"><a href="https://example.com/d.html">d</a>
<div style="background-image:url(https://example.com/e.jpg)"></div>`

	f := newFixture(t, page, map[string]string{
		"https://example.com/a.css":  "A",
		"https://example.com/c.png":  "C",
		"https://example.com/d.html": "<p>D</p>",
	}, nil)

	links, err := f.service.ExtractLinks(context.Background(), target, false)
	require.NoError(t, err)
	assert.Empty(t, f.fetcher.Calls())
	assert.Equal(t, "mem/ani/extracted_links.json", links.LinksPath)

	var decoded map[string][]models.ResourceDescriptor
	require.NoError(t, json.Unmarshal(f.sink.files["ani/extracted_links.json"], &decoded))
	for _, key := range []string{"customAttributeFiles", "filesToDownload", "cssLinks", "scriptLinks", "imgLinks", "htmlLinks", "inlineBackgroundImages"} {
		assert.Contains(t, decoded, key)
	}
	assert.Len(t, decoded["filesToDownload"], 5)
	assert.Len(t, decoded["inlineBackgroundImages"], 1)
	assert.NotContains(t, f.sink.files, "download_report.json")
}

func TestExtractLinks_Download(t *testing.T) {
	page := `<link rel="stylesheet" href="https://example.com/a.css"><script src="http://insecure.example.com/b.js"></script>
<img src="https://example.com/c.png"><img src="https://example.com/missing.png">`

	f := newFixture(t, page, map[string]string{
		"https://example.com/a.css": "A",
		"https://example.com/c.png": "C",
	}, nil)

	links, err := f.service.ExtractLinks(context.Background(), target, true)
	require.NoError(t, err)

	assert.Equal(t, 2, links.Downloaded)
	assert.Equal(t, 2, links.Skipped)
	assert.Equal(t, "A", f.sink.String("assets/css/a.css"))
	assert.Equal(t, "C", f.sink.String("assets/images/c.png"))
	assert.NotContains(t, f.fetcher.Calls(), "http://insecure.example.com/b.js")
	assert.NotContains(t, f.sink.files, "download_report.json")
}

func TestSaveSource(t *testing.T) {
	page := `<html><body><img src="https://example.com/a.png"></body></html>`
	f := newFixture(t, page, nil, nil)

	path, err := f.service.SaveSource(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "mem/page-source.html", path)
	assert.Equal(t, page, f.sink.String("page-source.html"))
	assert.Empty(t, f.fetcher.Calls())
}

func TestSaveSource_WriteFailure(t *testing.T) {
	f := newFixture(t, "<p>x</p>", nil, nil)
	f.sink.fail["page-source.html"] = true

	_, err := f.service.SaveSource(context.Background(), target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := NewService(config.NewDefaultCaptureConfig(), Dependencies{}, zerolog.Nop())
	require.Error(t, err)

	var validationErr *errorwrapper.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "source", validationErr.Field)
}

func TestService_Close(t *testing.T) {
	f := newFixture(t, "<p>x</p>", nil, nil)
	require.NoError(t, f.service.Close())
	assert.True(t, f.source.closed)
}
