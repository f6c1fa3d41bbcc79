package splitter

import (
	"errors"
	"math"
	"testing"
)

func TestSplitMediaCountFormula(t *testing.T) {
	probe := MediaProbe{DurationSeconds: 3000, BitrateBitsPerSecond: 256000}

	segments, err := SplitMedia(probe, 20971520)
	if err != nil {
		t.Fatalf("SplitMedia() error = %v", err)
	}

	if len(segments) != 5 {
		t.Fatalf("segment count = %d, want 5", len(segments))
	}

	wantDuration := 655.36
	for _, s := range segments {
		if math.Abs(s.DurationSeconds-wantDuration) > 1e-9 {
			t.Errorf("segment %d duration = %v, want %v", s.Index, s.DurationSeconds, wantDuration)
		}
	}

	// The last segment's nominal duration runs past the end of the source;
	// the encoder truncates it downstream
	last := segments[len(segments)-1]
	if last.StartSeconds+last.DurationSeconds <= probe.DurationSeconds {
		t.Errorf("last segment ends at %v, expected nominal overrun past %v",
			last.StartSeconds+last.DurationSeconds, probe.DurationSeconds)
	}
}

func TestSplitMediaSingleSegment(t *testing.T) {
	probe := MediaProbe{DurationSeconds: 930, BitrateBitsPerSecond: 128000}

	segments, err := SplitMedia(probe, 20971520)
	if err != nil {
		t.Fatalf("SplitMedia() error = %v", err)
	}

	if len(segments) != 1 {
		t.Fatalf("segment count = %d, want 1", len(segments))
	}
	if segments[0].Index != 1 || segments[0].StartSeconds != 0 {
		t.Errorf("segment = %+v, want index 1 starting at 0", segments[0])
	}
}

func TestSplitMediaInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		probe    MediaProbe
		maxBytes int64
	}{
		{"zero bitrate", MediaProbe{DurationSeconds: 100, BitrateBitsPerSecond: 0}, 1 << 20},
		{"negative bitrate", MediaProbe{DurationSeconds: 100, BitrateBitsPerSecond: -128000}, 1 << 20},
		{"zero duration", MediaProbe{DurationSeconds: 0, BitrateBitsPerSecond: 128000}, 1 << 20},
		{"zero ceiling", MediaProbe{DurationSeconds: 100, BitrateBitsPerSecond: 128000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitMedia(tt.probe, tt.maxBytes)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("SplitMedia() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSplitMediaCoverage(t *testing.T) {
	tests := []struct {
		name     string
		probe    MediaProbe
		maxBytes int64
	}{
		{"long podcast", MediaProbe{DurationSeconds: 7261.5, BitrateBitsPerSecond: 256000}, 20971520},
		{"short clip", MediaProbe{DurationSeconds: 42.7, BitrateBitsPerSecond: 96000}, 1 << 20},
		{"high bitrate", MediaProbe{DurationSeconds: 3600, BitrateBitsPerSecond: 1411200}, 20971520},
		{"awkward ratio", MediaProbe{DurationSeconds: 1000.001, BitrateBitsPerSecond: 192001}, 5000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := SplitMedia(tt.probe, tt.maxBytes)
			if err != nil {
				t.Fatalf("SplitMedia() error = %v", err)
			}
			if len(segments) == 0 {
				t.Fatal("no segments produced")
			}

			var sum float64
			prevStart := -1.0
			for i, s := range segments {
				if s.Index != i+1 {
					t.Errorf("segment %d has index %d", i, s.Index)
				}
				if s.StartSeconds <= prevStart {
					t.Errorf("start times not strictly increasing at segment %d", s.Index)
				}
				// Contiguity: each segment starts where the previous one ends
				if math.Abs(s.StartSeconds-sum) > 1e-6 {
					t.Errorf("segment %d starts at %v, want %v", s.Index, s.StartSeconds, sum)
				}
				prevStart = s.StartSeconds
				sum += s.DurationSeconds
			}

			if sum < tt.probe.DurationSeconds {
				t.Errorf("nominal durations sum to %v, below source duration %v", sum, tt.probe.DurationSeconds)
			}
			// Minimality: dropping the last segment must leave a gap
			if len(segments) > 1 && sum-segments[len(segments)-1].DurationSeconds >= tt.probe.DurationSeconds {
				t.Error("segment list is not minimal")
			}
		})
	}
}
