package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/dangtuanvu/vidask/internal/logger"
	"github.com/dangtuanvu/vidask/internal/splitter"
)

type implProber struct {
	logger logger.Logger
}

// NewProber creates a Prober backed by ffprobe.
func NewProber(log logger.Logger) Prober {
	return &implProber{logger: log}
}

func (p *implProber) Probe(ctx context.Context, path string) (splitter.MediaProbe, error) {
	p.logger.Debug(ctx, "Probing media: %s", path)

	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return splitter.MediaProbe{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	probe, err := parseProbe(raw)
	if err != nil {
		return splitter.MediaProbe{}, fmt.Errorf("parse probe of %s: %w", path, err)
	}

	p.logger.Debug(ctx, "Probed %s: %.1fs at %.0f b/s", path, probe.DurationSeconds, probe.BitrateBitsPerSecond)
	return probe, nil
}

// parseProbe extracts duration and bitrate from ffprobe's JSON output.
// ffprobe reports both as strings in the format section.
func parseProbe(raw string) (splitter.MediaProbe, error) {
	var doc struct {
		Format struct {
			Duration string `json:"duration"`
			BitRate  string `json:"bit_rate"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return splitter.MediaProbe{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(doc.Format.Duration, 64)
	if err != nil {
		return splitter.MediaProbe{}, fmt.Errorf("parse duration %q: %w", doc.Format.Duration, err)
	}
	bitrate, err := strconv.ParseFloat(doc.Format.BitRate, 64)
	if err != nil {
		return splitter.MediaProbe{}, fmt.Errorf("parse bit_rate %q: %w", doc.Format.BitRate, err)
	}

	return splitter.MediaProbe{
		DurationSeconds:      duration,
		BitrateBitsPerSecond: bitrate,
	}, nil
}
