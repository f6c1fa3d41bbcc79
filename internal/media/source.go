package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/dangtuanvu/vidask/internal/logger"
	"github.com/dangtuanvu/vidask/pkg/executor"
)

// ErrBadSource reports a source reference no video id can be derived from.
var ErrBadSource = errors.New("invalid source reference")

// VideoID derives the cache key from a source URL: the "v" query
// parameter, or the path of a youtu.be short link.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadSource, rawURL)
	}

	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}

	if strings.HasSuffix(u.Hostname(), "youtu.be") {
		if id := strings.Trim(u.Path, "/"); id != "" {
			return strings.SplitN(id, "/", 2)[0], nil
		}
	}

	return "", fmt.Errorf("%w: no video id in %s", ErrBadSource, rawURL)
}

type implDownloader struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// NewDownloader creates an Acquirer that shells out to yt-dlp.
func NewDownloader(binary string, exec executor.Executor, log logger.Logger) Acquirer {
	return &implDownloader{
		binary:   binary,
		executor: exec,
		logger:   log,
	}
}

// Acquire fetches the source title, then downloads and extracts the audio
// track to destPath unless it already exists.
func (d *implDownloader) Acquire(ctx context.Context, sourceURL, destPath string) (string, error) {
	out, err := d.executor.Execute(ctx, d.binary, "--no-download", "--print", "title", sourceURL)
	if err != nil {
		return "", fmt.Errorf("fetch title: %w", err)
	}
	title := strings.TrimSpace(out)

	if _, err := os.Stat(destPath); err == nil {
		d.logger.Info(ctx, "Audio already present, skipping download: %s", destPath)
		return title, nil
	}

	d.logger.Info(ctx, "Downloading audio track: %s", sourceURL)

	args := []string{
		"-f", "bestaudio",
		"-x",
		"--audio-format", "mp3",
		"--no-playlist",
		"-o", destPath,
		sourceURL,
	}
	if _, err := d.executor.Execute(ctx, d.binary, args...); err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}

	d.logger.Info(ctx, "Audio downloaded: %s", destPath)
	return title, nil
}
