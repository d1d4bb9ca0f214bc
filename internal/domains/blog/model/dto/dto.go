package dto

import (
	"mime/multipart"
	"time"

	"hotel/internal/domains/blog/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
)

// CreateBlogRequest is read from a multipart form. An empty slug is derived from the title.
type CreateBlogRequest struct {
	Title         string                `json:"title"        validate:"required,max=200"`
	Slug          string                `json:"slug"         validate:"omitempty,max=200"`
	Summary       string                `json:"summary"      validate:"omitempty,max=500"`
	Content       string                `json:"content"      validate:"required"`
	Published     *bool                 `json:"published"`
	PublishedAt   string                `json:"published_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Thumbnail     *multipart.FileHeader `json:"thumbnail"    swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/gif image/webp,maxfilesize=5"`
	ThumbnailFile multipart.File        `json:"-"`
}

func (r *CreateBlogRequest) SlugOrTitle() string {
	if r.Slug != constant.Empty {
		return model.Slugify(r.Slug)
	}

	return model.Slugify(r.Title)
}

func (r *CreateBlogRequest) ToModel(authorID, actor, thumbnail string, now time.Time) model.Blog {
	published := true
	if r.Published != nil {
		published = *r.Published
	}

	return model.Blog{
		ID:          uuid.NewString(),
		Title:       r.Title,
		Slug:        r.SlugOrTitle(),
		Summary:     r.Summary,
		Content:     r.Content,
		Thumbnail:   thumbnail,
		AuthorID:    authorID,
		Published:   published,
		PublishedAt: publishedAt(published, r.PublishedAt, now),
		Metadata:    gModel.NewMetadata(actor, now),
	}
}

// UpdateBlogRequest is read from a multipart form. The slug only changes when one is sent.
type UpdateBlogRequest struct {
	Title         string                `db:"title"   json:"title"        validate:"omitempty,max=200"`
	Slug          string                `json:"slug"         validate:"omitempty,max=200"`
	Summary       string                `db:"summary" json:"summary"      validate:"omitempty,max=500"`
	Content       string                `db:"content" json:"content"`
	Published     *bool                 `json:"published"`
	PublishedAt   string                `json:"published_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Thumbnail     *multipart.FileHeader `json:"thumbnail"    swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/gif image/webp,maxfilesize=5"`
	ThumbnailFile multipart.File        `json:"-"`
}

func (r *UpdateBlogRequest) IsEmpty() bool {
	return r.Title == constant.Empty &&
		r.Slug == constant.Empty &&
		r.Summary == constant.Empty &&
		r.Content == constant.Empty &&
		r.Published == nil &&
		r.PublishedAt == constant.Empty &&
		r.Thumbnail == nil
}

func (r *UpdateBlogRequest) Fields(actor string, current model.Blog, now time.Time) map[string]any {
	fields := shared.TransformFields(*r, actor)

	if r.Slug != constant.Empty {
		fields[model.FieldSlug] = model.Slugify(r.Slug)
	}

	published := current.Published
	if r.Published != nil {
		published = *r.Published
		fields[model.FieldPublished] = published
	}

	switch {
	case r.PublishedAt != constant.Empty:
		fields[model.FieldPublishedAt] = publishedAt(true, r.PublishedAt, now)
	case published && current.PublishedAt == nil:
		fields[model.FieldPublishedAt] = now
	}

	return fields
}

func publishedAt(published bool, value string, now time.Time) *time.Time {
	if value != constant.Empty {
		if parsed, err := time.Parse(constant.DateFormat, value); err == nil {
			return &parsed
		}
	}

	if !published {
		return nil
	}

	return &now
}

type BlogResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	Content     string `json:"content,omitempty"`
	Thumbnail   string `json:"thumbnail"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name"`
	Published   bool   `json:"published"`
	PublishedAt string `json:"published_at,omitempty"`
	gDto.Metadata
}

func (r *BlogResponse) FromModel(model model.Blog) {
	r.ID = model.ID
	r.Title = model.Title
	r.Slug = model.Slug
	r.Summary = model.Summary
	r.Content = model.Content
	r.Thumbnail = model.Thumbnail
	r.AuthorID = model.AuthorID
	r.AuthorName = model.AuthorName
	r.Published = model.Published

	if model.PublishedAt != nil {
		r.PublishedAt = model.PublishedAt.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBlogsResponse struct {
	Blogs     []BlogResponse `json:"blogs"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

// FromModels leaves out the post bodies.
func (r *GetBlogsResponse) FromModels(models []model.Blog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Blogs = make([]BlogResponse, len(models))
	for i, mod := range models {
		r.Blogs[i].FromModel(mod)
		r.Blogs[i].Content = constant.Empty
	}
}
