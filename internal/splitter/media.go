package splitter

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput reports a precondition violation on splitter inputs.
var ErrInvalidInput = errors.New("invalid input")

// MediaProbe holds the probed characteristics of a media asset.
type MediaProbe struct {
	DurationSeconds      float64
	BitrateBitsPerSecond float64
}

// Segment describes one time slice of a media asset. Segments are cut by
// the transcoder from these descriptors; the splitter itself touches no
// files.
type Segment struct {
	Index           int
	StartSeconds    float64
	DurationSeconds float64
}

// SplitMedia computes the minimal ordered list of segments whose encoded
// size stays under maxSegmentBytes, assuming the constant bitrate reported
// by the probe. Variable-bitrate sources can still exceed the ceiling; that
// is a property of the input, not of this function.
//
// Every segment, including the last, carries the same nominal duration.
// The encoder stops at end of stream, so the final segment's actual length
// may be shorter than requested.
func SplitMedia(probe MediaProbe, maxSegmentBytes int64) ([]Segment, error) {
	if probe.BitrateBitsPerSecond <= 0 {
		return nil, fmt.Errorf("%w: bitrate must be positive, got %f", ErrInvalidInput, probe.BitrateBitsPerSecond)
	}
	if probe.DurationSeconds <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidInput, probe.DurationSeconds)
	}
	if maxSegmentBytes <= 0 {
		return nil, fmt.Errorf("%w: segment size ceiling must be positive, got %d", ErrInvalidInput, maxSegmentBytes)
	}

	bytesPerSecond := probe.BitrateBitsPerSecond / 8

	// Truncate to millisecond resolution so repeated start-time addition
	// does not drift
	segmentDuration := math.Floor(float64(maxSegmentBytes)/bytesPerSecond*1000) / 1000
	if segmentDuration <= 0 {
		return nil, fmt.Errorf("%w: ceiling %d bytes is below one millisecond at %f b/s",
			ErrInvalidInput, maxSegmentBytes, probe.BitrateBitsPerSecond)
	}

	count := int(math.Ceil(probe.DurationSeconds / segmentDuration))
	if count < 1 {
		count = 1
	}

	segments := make([]Segment, count)
	for i := 0; i < count; i++ {
		segments[i] = Segment{
			Index:           i + 1,
			StartSeconds:    float64(i) * segmentDuration,
			DurationSeconds: segmentDuration,
		}
	}

	return segments, nil
}
