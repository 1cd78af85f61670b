package config

// CaptureConfig controls what a capture run writes and which descriptors it follows
type CaptureConfig struct {
	OutputDir    string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" validate:"required"`
	SnapshotMode string `json:"snapshot_mode,omitempty" yaml:"snapshot_mode,omitempty" validate:"required,snapshotmode"`
	// SourceFile is the local HTML document read in file snapshot mode.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	FollowLinkedPages bool `json:"follow_linked_pages" yaml:"follow_linked_pages"`
	DownloadUnknown   bool `json:"download_unknown" yaml:"download_unknown"`
	ScanStylesheets   bool `json:"scan_stylesheets" yaml:"scan_stylesheets"`

	IndexFileName    string `json:"index_file_name,omitempty" yaml:"index_file_name,omitempty" validate:"required"`
	ManifestFileName string `json:"manifest_file_name,omitempty" yaml:"manifest_file_name,omitempty" validate:"required"`
	LinksFileName    string `json:"links_file_name,omitempty" yaml:"links_file_name,omitempty" validate:"required"`
	SourceFileName   string `json:"source_file_name,omitempty" yaml:"source_file_name,omitempty" validate:"required"`
}

// NewDefaultCaptureConfig creates default capture configuration
func NewDefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		OutputDir:         DefaultCaptureOutputDir,
		SnapshotMode:      DefaultCaptureSnapshotMode,
		FollowLinkedPages: true,
		DownloadUnknown:   false,
		ScanStylesheets:   false,
		IndexFileName:     DefaultIndexFileName,
		ManifestFileName:  DefaultManifestFileName,
		LinksFileName:     DefaultLinksFileName,
		SourceFileName:    DefaultSourceFileName,
	}
}
