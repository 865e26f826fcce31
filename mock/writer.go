package mock

import (
	"context"
	"sync"

	"github.com/mjarosz/clipdown"
)

var _ clipdown.ClipWriter = (*ClipWriter)(nil)

// ClipWriter is a mock implementation of clipdown.ClipWriter. With a
// nil CreateClipFn it records clips instead, safe for concurrent use.
type ClipWriter struct {
	CreateClipFn func(ctx context.Context, clip *clipdown.Clip) error

	mu      sync.Mutex
	created []*clipdown.Clip
}

func (w *ClipWriter) CreateClip(ctx context.Context, clip *clipdown.Clip) error {
	if w.CreateClipFn != nil {
		return w.CreateClipFn(ctx, clip)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.created = append(w.created, clip)
	return nil
}

// Created returns the clips recorded by the nil-Fn default.
func (w *ClipWriter) Created() []*clipdown.Clip {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*clipdown.Clip(nil), w.created...)
}
