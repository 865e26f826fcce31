package clipdown

import (
	"context"
	"time"
)

// Clip represents a web page captured as Markdown.
type Clip struct {
	ID          string       `json:"id"`
	URL         string       `json:"url"`
	Title       string       `json:"title"`
	Markdown    string       `json:"markdown"`
	Filename    string       `json:"filename"`
	ContentHash string       `json:"contentHash"`
	Metadata    PageMetadata `json:"metadata"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Validate returns an error if the clip contains invalid fields.
func (c *Clip) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "clip URL required")
	}
	if c.Markdown == "" {
		return Errorf(EINVALID, "clip markdown required")
	}
	return nil
}

// ClipWriter writes clips to storage.
type ClipWriter interface {
	CreateClip(ctx context.Context, clip *Clip) error
}

// ClipService represents a service for managing stored clips.
type ClipService interface {
	// CreateClip creates a new clip.
	// Returns ECONFLICT if a clip with the same ID already exists.
	CreateClip(ctx context.Context, clip *Clip) error

	// FindClipByID retrieves a clip by ID.
	// Returns ENOTFOUND if the clip does not exist.
	FindClipByID(ctx context.Context, id string) (*Clip, error)

	// FindClips retrieves clips matching the filter.
	FindClips(ctx context.Context, filter ClipFilter) ([]*Clip, error)

	// DeleteClip permanently removes a clip.
	// Returns ENOTFOUND if the clip does not exist.
	DeleteClip(ctx context.Context, id string) error
}

// ClipSortOrder represents the sort order for clip queries.
type ClipSortOrder string

// ClipSortOrder constants for ClipFilter.
const (
	ClipsByCreatedAt ClipSortOrder = "created_at"
	ClipsByTitle     ClipSortOrder = "title"
)

// ClipFilter represents a filter for FindClips.
type ClipFilter struct {
	ID          *string `json:"id"`
	URL         *string `json:"url"`
	Domain      *string `json:"domain"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy ClipSortOrder `json:"sortBy"`
}

// ClipProgress reports progress during batch clipping.
type ClipProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ClipProgressFunc is called as URLs are processed.
type ClipProgressFunc func(ClipProgress)
