package model

import (
	"regexp"
	"strings"
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "blogs"
	EntityName = "blog"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldSummary     = "summary"
	FieldThumbnail   = "thumbnail"
	FieldAuthorID    = "author_id"
	FieldPublished   = "published"
	FieldPublishedAt = "published_at"

	MaxSlugLength = 200
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes     = regexp.MustCompile(`-{2,}`)
)

type Blog struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Slug        string     `db:"slug"`
	Summary     string     `db:"summary"`
	Content     string     `db:"content"`
	Thumbnail   string     `db:"thumbnail"`
	AuthorID    string     `db:"author_id"`
	AuthorName  string     `db:"author_name" table:"users" column:"username"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
	model.Metadata
}

func (Blog) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = blogs.author_id"
}

// Slugify lowercases value and joins its words with hyphens.
func Slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}

	return slug
}
