package watcher

import "context"

// Watcher monitors a drop directory for new media files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one dropped media file.
type Handler func(ctx context.Context, path string) error
