package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mjarosz/clipdown"
)

// Compile-time interface verification.
var _ clipdown.ClipService = (*ClipService)(nil)

// clipColumns lists the clips table columns in scanClip order.
const clipColumns = `id, url, title, markdown, filename, content_hash,
	author, description, site, domain, canonical_url, favicon, image,
	published, word_count, created_at`

// ClipService implements clipdown.ClipService using SQLite.
type ClipService struct {
	db *DB
}

// NewClipService creates a new ClipService.
func NewClipService(db *DB) *ClipService {
	return &ClipService{db: db}
}

// hashContent computes xxHash of content and returns it as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// CreateClip creates a new clip. The ID, content hash, and creation
// time are filled in when the caller left them empty.
func (s *ClipService) CreateClip(ctx context.Context, clip *clipdown.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}

	if clip.ID == "" {
		clip.ID = uuid.New().String()
	}
	if clip.ContentHash == "" {
		clip.ContentHash = hashContent(clip.Markdown)
	}
	if clip.CreatedAt.IsZero() {
		clip.CreatedAt = time.Now().UTC()
	}

	var published any
	if clip.Metadata.Published != nil {
		published = clip.Metadata.Published.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clips (`+clipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, clip.ID, clip.URL, clip.Title, clip.Markdown, clip.Filename, clip.ContentHash,
		clip.Metadata.Author, clip.Metadata.Description, clip.Metadata.Site,
		clip.Metadata.Domain, clip.Metadata.URL, clip.Metadata.Favicon, clip.Metadata.Image,
		published, clip.Metadata.WordCount, clip.CreatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return clipdown.Errorf(clipdown.ECONFLICT, "clip already exists: %s", clip.ID)
	}
	return err
}

// FindClipByID retrieves a clip by ID.
func (s *ClipService) FindClipByID(ctx context.Context, id string) (*clipdown.Clip, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+clipColumns+`
		FROM clips
		WHERE id = ?
	`, id)

	clip, err := scanClip(row)
	if err == sql.ErrNoRows {
		return nil, clipdown.Errorf(clipdown.ENOTFOUND, "clip not found")
	}
	if err != nil {
		return nil, err
	}

	return clip, nil
}

// FindClips retrieves clips matching the filter.
func (s *ClipService) FindClips(ctx context.Context, filter clipdown.ClipFilter) ([]*clipdown.Clip, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + clipColumns + ` FROM clips WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	switch filter.SortBy {
	case clipdown.ClipsByTitle:
		query.WriteString(" ORDER BY title ASC")
	default:
		query.WriteString(" ORDER BY created_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []*clipdown.Clip
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

// DeleteClip permanently removes a clip.
func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clips WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return clipdown.Errorf(clipdown.ENOTFOUND, "clip not found")
	}

	return nil
}

// parseRFC3339 parses an RFC3339 timestamp column, naming the column
// in the error when parsing fails.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when set.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanClip reads one clips row. The stored title hydrates both the
// clip title and the metadata title, which the pipeline keeps equal.
func scanClip(row rowScanner) (*clipdown.Clip, error) {
	var clip clipdown.Clip
	var published sql.NullString
	var createdAt string

	if err := row.Scan(&clip.ID, &clip.URL, &clip.Title, &clip.Markdown, &clip.Filename,
		&clip.ContentHash, &clip.Metadata.Author, &clip.Metadata.Description,
		&clip.Metadata.Site, &clip.Metadata.Domain, &clip.Metadata.URL,
		&clip.Metadata.Favicon, &clip.Metadata.Image, &published,
		&clip.Metadata.WordCount, &createdAt); err != nil {
		return nil, err
	}

	clip.Metadata.Title = clip.Title

	if published.Valid {
		t, err := parseRFC3339(published.String, "published")
		if err != nil {
			return nil, err
		}
		clip.Metadata.Published = &t
	}

	var err error
	clip.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &clip, nil
}
