package blog

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/blog/model"
	"hotel/internal/domains/blog/model/dto"
	"hotel/internal/domains/blog/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/request"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formTitle       = "title"
	formSlug        = "slug"
	formSummary     = "summary"
	formContent     = "content"
	formPublished   = "published"
	formPublishedAt = "published_at"
)

var sortColumns = map[string]string{
	model.FieldTitle:        "blogs.title",
	model.FieldPublishedAt:  "blogs.published_at",
	constant.FieldCreatedAt: "blogs.created_at",
}

type Handler struct {
	service service.Blog
	otel    otel.Otel
}

func New(service service.Blog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blogs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlog)
		routerGroup.Get("/", handler.GetBlogs)
		routerGroup.Get("/{id}", handler.GetBlogByID)
		routerGroup.Patch("/{id}", handler.UpdateBlog)
		routerGroup.Delete("/{id}", handler.DeleteBlog)
	})

	router.Route("/public/blogs", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPublishedBlogs)
		routerGroup.Get("/{slug}", handler.GetBlogBySlug)
	})
}

// CreateBlog publishes a post, or stores it as a draft.
// @Summary Create a blog post
// @Tags Blog
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param slug formData string false "Slug, derived from the title when empty"
// @Param summary formData string false "Summary"
// @Param content formData string true "Content"
// @Param published formData boolean false "Published flag, defaults to true"
// @Param published_at formData string false "Publish time (RFC3339)"
// @Param thumbnail formData file false "Thumbnail"
// @Success 201 {object} response.Data[dto.BlogResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs [post]
// @Security BearerAuth
func (handler *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlog")
	defer scope.End()

	if err := request.ParseMultipart(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	file, header, err := request.FormFile(r, constant.FormThumbnail)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if file != nil {
		defer file.Close()
	}

	req := dto.CreateBlogRequest{
		Title:         r.FormValue(formTitle),
		Slug:          r.FormValue(formSlug),
		Summary:       r.FormValue(formSummary),
		Content:       r.FormValue(formContent),
		Published:     request.FormBool(r, formPublished),
		PublishedAt:   r.FormValue(formPublishedAt),
		Thumbnail:     header,
		ThumbnailFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create blog")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBlogs lists posts including drafts.
// @Summary Get all blog posts
// @Tags Blog
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search title or summary"
// @Param published query boolean false "Filter by published flag"
// @Success 200 {object} response.Data[dto.GetBlogsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/blogs [get]
// @Security BearerAuth
func (handler *Handler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(sortColumns, "blogs.created_at")

	filter := request.NewFilters(r, model.TableName).
		Search(model.FieldTitle, model.FieldSummary).
		Bool(model.FieldPublished).
		Group()

	blogs, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blogs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, blogs)
}

// GetBlogByID returns a post including drafts.
// @Summary Get a blog post by ID
// @Tags Blog
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Data[dto.BlogResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBlogByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogByID")
	defer scope.End()

	blog, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blog by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, blog)
}

// UpdateBlog edits a post. A new thumbnail replaces the stored one.
// @Summary Update a blog post
// @Tags Blog
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Blog ID"
// @Param title formData string false "Title"
// @Param slug formData string false "Slug"
// @Param summary formData string false "Summary"
// @Param content formData string false "Content"
// @Param published formData boolean false "Published flag"
// @Param published_at formData string false "Publish time (RFC3339)"
// @Param thumbnail formData file false "Thumbnail"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBlog")
	defer scope.End()

	if err := request.ParseMultipart(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	file, header, err := request.FormFile(r, constant.FormThumbnail)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if file != nil {
		defer file.Close()
	}

	req := dto.UpdateBlogRequest{
		Title:         r.FormValue(formTitle),
		Slug:          r.FormValue(formSlug),
		Summary:       r.FormValue(formSummary),
		Content:       r.FormValue(formContent),
		Published:     request.FormBool(r, formPublished),
		PublishedAt:   r.FormValue(formPublishedAt),
		Thumbnail:     header,
		ThumbnailFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update blog")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Blog updated successfully")
}

// DeleteBlog removes a post and its thumbnail.
// @Summary Delete a blog post
// @Tags Blog
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlog")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete blog")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Blog deleted successfully")
}

// GetPublishedBlogs lists published posts, newest first.
// @Summary Get published blog posts
// @Tags Public
// @Produce json
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Success 200 {object} response.Data[dto.GetBlogsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/public/blogs [get]
func (handler *Handler) GetPublishedBlogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublishedBlogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	blogs, err := handler.service.GetPublished(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get published blogs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, blogs)
}

// GetBlogBySlug returns a published post.
// @Summary Get a published blog post
// @Tags Public
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} response.Data[dto.BlogResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/public/blogs/{slug} [get]
func (handler *Handler) GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogBySlug")
	defer scope.End()

	blog, err := handler.service.GetBySlug(ctx, chi.URLParam(r, constant.RequestParamSlug))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blog by slug")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, blog)
}
