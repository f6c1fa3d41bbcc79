package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/dangtuanvu/vidask/internal/logger"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url with extras", "https://www.youtube.com/watch?v=abc123&t=42s", "abc123", false},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short link with query", "https://youtu.be/abc123?si=xyz", "abc123", false},
		{"no video id", "https://www.youtube.com/feed/subscriptions", "", true},
		{"not a url", "://///", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VideoID(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrBadSource) {
					t.Errorf("VideoID(%q) error = %v, want ErrBadSource", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("VideoID(%q) error = %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("VideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseProbe(t *testing.T) {
	raw := `{"format": {"filename": "out.mp3", "duration": "3000.123000", "bit_rate": "256000"}}`

	probe, err := parseProbe(raw)
	if err != nil {
		t.Fatalf("parseProbe() error = %v", err)
	}
	if probe.DurationSeconds != 3000.123 {
		t.Errorf("DurationSeconds = %v, want 3000.123", probe.DurationSeconds)
	}
	if probe.BitrateBitsPerSecond != 256000 {
		t.Errorf("BitrateBitsPerSecond = %v, want 256000", probe.BitrateBitsPerSecond)
	}
}

func TestParseProbeInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "ffprobe exploded"},
		{"missing duration", `{"format": {"bit_rate": "256000"}}`},
		{"missing bitrate", `{"format": {"duration": "10.0"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseProbe(tt.raw); err == nil {
				t.Error("parseProbe() expected error")
			}
		})
	}
}

func TestSegmentPath(t *testing.T) {
	got := SegmentPath("data/tmp", "abc123", 3)
	if !strings.HasSuffix(got, "abc123_segment_3.mp3") {
		t.Errorf("SegmentPath() = %q", got)
	}
	if AudioPath("data/tmp", "abc123") == got {
		t.Error("AudioPath() collides with SegmentPath()")
	}
}

// fakeExecutor records invocations and replies from a script keyed by the
// first argument after the binary name.
type fakeExecutor struct {
	calls   [][]string
	replies map[string]string
	fail    bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.fail {
		return "", fmt.Errorf("command '%s' failed", name)
	}
	return f.replies[args[0]], nil
}

func TestDownloaderSkipsExistingAudio(t *testing.T) {
	dir := t.TempDir()
	dest := AudioPath(dir, "abc123")
	writeFile(t, dest, "mp3 bytes")

	exec := &fakeExecutor{replies: map[string]string{"--no-download": "A Great Talk\n"}}
	d := NewDownloader("yt-dlp", exec, logger.New("error"))

	title, err := d.Acquire(context.Background(), "https://www.youtube.com/watch?v=abc123", dest)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if title != "A Great Talk" {
		t.Errorf("title = %q, want A Great Talk", title)
	}
	// Only the title fetch ran; no download call for an existing asset
	if len(exec.calls) != 1 {
		t.Errorf("executor called %d times, want 1: %v", len(exec.calls), exec.calls)
	}
}

func TestDownloaderDownloadsMissingAudio(t *testing.T) {
	dir := t.TempDir()
	dest := AudioPath(dir, "abc123")

	exec := &fakeExecutor{replies: map[string]string{"--no-download": "A Great Talk\n"}}
	d := NewDownloader("yt-dlp", exec, logger.New("error"))

	if _, err := d.Acquire(context.Background(), "https://www.youtube.com/watch?v=abc123", dest); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("executor called %d times, want 2: %v", len(exec.calls), exec.calls)
	}

	download := exec.calls[1]
	if download[len(download)-1] != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("download call = %v, want source url last", download)
	}
}

func TestDownloaderTitleFailure(t *testing.T) {
	exec := &fakeExecutor{fail: true}
	d := NewDownloader("yt-dlp", exec, logger.New("error"))

	if _, err := d.Acquire(context.Background(), "https://youtu.be/abc", "out.mp3"); err == nil {
		t.Error("Acquire() expected error when yt-dlp fails")
	}
}
