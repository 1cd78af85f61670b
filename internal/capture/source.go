package capture

import (
	"context"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/progress"
)

// SaveSource writes the snapshot markup unchanged and returns the path written
func (s *Service) SaveSource(ctx context.Context, target string) (string, error) {
	snap, err := s.takeSnapshot(ctx, target)
	if err != nil {
		return "", err
	}

	fullPath, err := s.sink.Write(ctx, s.config.SourceFileName, []byte(snap.HTML))
	if err != nil {
		s.progress.Finish(progress.ProgressStatusError, err.Error())
		return "", errorwrapper.WrapError(err, "failed to save page source")
	}

	s.progress.Finish(progress.ProgressStatusComplete, "page source saved")
	s.logger.Info().Str("url", snap.URL).Str("path", fullPath).Msg("Page source saved")
	return fullPath, nil
}
