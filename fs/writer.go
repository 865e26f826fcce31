// Package fs provides file-based storage for clips.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mjarosz/clipdown"
)

// ClipPath returns the relative path a clip is written to: the source
// domain as directory, the clip's safe filename plus ".md" as name.
// Example: a clip of https://blog.example.com/post titled "My Post"
// lands at blog.example.com/My Post.md.
func ClipPath(clip *clipdown.Clip) string {
	name := clip.Filename
	if name == "" {
		name = clipdown.SafeFilename(clip.Title)
	}

	domain := clip.Metadata.Domain
	if domain == "" {
		if u, err := url.Parse(clip.URL); err == nil {
			domain = u.Host
		}
	}
	if domain != "" {
		domain = clipdown.SafeFilename(domain)
	}

	return filepath.Join(domain, name+".md")
}

// FormatClip renders a clip as a markdown document with YAML frontmatter.
// Free-text fields are quoted so titles with colons survive YAML parsing.
func FormatClip(clip *clipdown.Clip) string {
	clipped := clip.CreatedAt
	if clipped.IsZero() {
		clipped = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", strconv.Quote(clip.Title))
	fmt.Fprintf(&b, "url: %s\n", clip.URL)
	if clip.Metadata.Author != "" {
		fmt.Fprintf(&b, "author: %s\n", strconv.Quote(clip.Metadata.Author))
	}
	if clip.Metadata.Site != "" {
		fmt.Fprintf(&b, "site: %s\n", strconv.Quote(clip.Metadata.Site))
	}
	if clip.Metadata.Published != nil {
		fmt.Fprintf(&b, "published: %s\n", clip.Metadata.Published.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "clipped: %s\n", clipped.Format("2006-01-02"))
	b.WriteString("---\n\n")
	b.WriteString(clip.Markdown)
	return b.String()
}

// Ensure ClipWriter implements clipdown.ClipWriter at compile time.
var _ clipdown.ClipWriter = (*ClipWriter)(nil)

// ClipWriter writes clips as markdown files under a base directory,
// one subdirectory per source domain.
type ClipWriter struct {
	baseDir string
}

// NewClipWriter creates a new ClipWriter that writes to the given base directory.
func NewClipWriter(baseDir string) *ClipWriter {
	return &ClipWriter{baseDir: baseDir}
}

// CreateClip writes a clip to disk as a markdown file.
func (w *ClipWriter) CreateClip(ctx context.Context, clip *clipdown.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, ClipPath(clip))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	fullPath, err := uniquePath(fullPath)
	if err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatClip(clip)), 0644)
}

// uniquePath appends a numeric suffix when the target already exists,
// so a clip never clobbers an earlier one with the same title.
func uniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 2; i < 100; i++ {
		candidate := fmt.Sprintf("%s %d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", clipdown.Errorf(clipdown.ECONFLICT, "too many clips named %q", filepath.Base(path))
}
