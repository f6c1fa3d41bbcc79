package media

import (
	"context"

	"github.com/dangtuanvu/vidask/internal/splitter"
)

// Acquirer fetches a source's metadata and produces a single-track audio
// asset at destPath. Acquisition is idempotent: an existing destPath is
// not downloaded again.
type Acquirer interface {
	Acquire(ctx context.Context, sourceURL, destPath string) (title string, err error)
}

// Prober reports duration and bitrate of a local media file.
type Prober interface {
	Probe(ctx context.Context, path string) (splitter.MediaProbe, error)
}

// Segmenter cuts one audio segment file out of a local media file. The
// encoder stops at end of stream, so the emitted segment may be shorter
// than the descriptor's nominal duration.
type Segmenter interface {
	Cut(ctx context.Context, srcPath string, seg splitter.Segment, destPath string) error
}
