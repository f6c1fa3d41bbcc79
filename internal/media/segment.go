package media

import (
	"context"
	"fmt"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/dangtuanvu/vidask/internal/logger"
	"github.com/dangtuanvu/vidask/internal/splitter"
)

// SegmentPath names the transient file for one segment of a video.
func SegmentPath(workDir, videoID string, index int) string {
	return filepath.Join(workDir, fmt.Sprintf("%s_segment_%d.mp3", videoID, index))
}

// AudioPath names the full downloaded audio asset for a video.
func AudioPath(workDir, videoID string) string {
	return filepath.Join(workDir, videoID+".mp3")
}

type implSegmenter struct {
	logger logger.Logger
}

// NewSegmenter creates a Segmenter backed by ffmpeg.
func NewSegmenter(log logger.Logger) Segmenter {
	return &implSegmenter{logger: log}
}

func (s *implSegmenter) Cut(ctx context.Context, srcPath string, seg splitter.Segment, destPath string) error {
	s.logger.Debug(ctx, "Cutting segment %d: start %.3fs, duration %.3fs", seg.Index, seg.StartSeconds, seg.DurationSeconds)

	err := ffmpeg.Input(srcPath, ffmpeg.KwArgs{
		"ss": fmt.Sprintf("%.3f", seg.StartSeconds),
	}).
		Output(destPath, ffmpeg.KwArgs{
			"t": fmt.Sprintf("%.3f", seg.DurationSeconds),
			"c": "copy",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("cut segment %d of %s: %w", seg.Index, srcPath, err)
	}

	return nil
}
