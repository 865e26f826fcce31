package mock

import (
	"context"

	"github.com/mjarosz/clipdown"
)

var _ clipdown.ClipService = (*ClipService)(nil)

// ClipService is a mock implementation of clipdown.ClipService.
type ClipService struct {
	CreateClipFn   func(ctx context.Context, clip *clipdown.Clip) error
	FindClipByIDFn func(ctx context.Context, id string) (*clipdown.Clip, error)
	FindClipsFn    func(ctx context.Context, filter clipdown.ClipFilter) ([]*clipdown.Clip, error)
	DeleteClipFn   func(ctx context.Context, id string) error
}

func (s *ClipService) CreateClip(ctx context.Context, clip *clipdown.Clip) error {
	return s.CreateClipFn(ctx, clip)
}

func (s *ClipService) FindClipByID(ctx context.Context, id string) (*clipdown.Clip, error) {
	return s.FindClipByIDFn(ctx, id)
}

func (s *ClipService) FindClips(ctx context.Context, filter clipdown.ClipFilter) ([]*clipdown.Clip, error) {
	return s.FindClipsFn(ctx, filter)
}

func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	return s.DeleteClipFn(ctx, id)
}
