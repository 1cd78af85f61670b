package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Capture Defaults
	DefaultCaptureOutputDir    = "capture"
	DefaultCaptureSnapshotMode = SnapshotModeHeadless
	DefaultIndexFileName       = "index.html"
	DefaultManifestFileName    = "download_report.json"
	DefaultLinksFileName       = "ani/extracted_links.json"
	DefaultSourceFileName      = "page-source.html"

	// Extractor Defaults
	DefaultCustomAttribute = "data-jarallax-original-styles"

	// HTTP Client Defaults
	DefaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultHTTPTimeoutSecs    = 30
	DefaultHTTPMaxRedirects   = 10
	DefaultMaxContentLengthMB = 50

	// Headless Browser Defaults
	DefaultWindowWidth         = 1920
	DefaultWindowHeight        = 1080
	DefaultPageLoadTimeoutSecs = 30
	DefaultWaitAfterLoadMs     = 1000

	// Progress Defaults
	DefaultProgressDisplayIntervalSecs = 3
)

// Snapshot modes select how the rendered document is obtained.
const (
	SnapshotModeHeadless = "headless"
	SnapshotModeStatic   = "static"
	SnapshotModeFile     = "file"
)
