package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/dangtuanvu/vidask/internal/logger"
)

// New creates a Watcher over dropDir with bounded handler concurrency.
func New(dropDir string, handler Handler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dropDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dropDir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		dropDir:   dropDir,
		handler:   handler,
		logger:    log,
		fsw:       fsw,
		semaphore: make(chan struct{}, maxConcurrent),
	}, nil
}
