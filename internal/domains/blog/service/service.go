package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/blog/model"
	"hotel/internal/domains/blog/model/dto"
	"hotel/internal/domains/blog/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBlog       = "blog:get"
	cacheGetAllBlog    = "blog:get_all"
	publishedSortField = "blogs.published_at"
)

type Blog interface {
	Create(ctx context.Context, req dto.CreateBlogRequest) (dto.BlogResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlogsResponse, error)
	Get(ctx context.Context, id string) (dto.BlogResponse, error)
	Update(ctx context.Context, req dto.UpdateBlogRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetPublished(ctx context.Context, req gDto.QueryParams) (dto.GetBlogsResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.BlogResponse, error)
}

type serviceImpl struct {
	repo  repository.Blog
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
	now   func() time.Time
}

func New(repo repository.Blog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Blog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
		now:   timezone.Now,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlogRequest) (res dto.BlogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slug := req.SlugOrTitle()
	if slug == constant.Empty {
		return res, failure.BadRequestFromString("slug must contain at least one letter or digit") // nolint:wrapcheck
	}

	if err = s.ensureUniqueSlug(ctx, slug, constant.Empty); err != nil {
		return res, err
	}

	thumbnail, objectName, err := s.uploadThumbnail(ctx, req.ThumbnailFile, req.Thumbnail)
	if err != nil {
		return res, err
	}

	user := identity.FromContext(ctx)
	blog := req.ToModel(user.UserID, user.Actor(), thumbnail, s.now())

	if err = s.repo.Insert(ctx, blog); err != nil {
		s.deleteObject(ctx, objectName)

		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("blog slug is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create blog")

		return res, fmt.Errorf("failed to create blog: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(blog)

	return res, nil
}

// GetAll lists every post, drafts included, for staff.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BlogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	blog, err := s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(blog)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBlogRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.get(ctx, filter)
	if err != nil {
		return err
	}

	if req.Slug != constant.Empty {
		slug := model.Slugify(req.Slug)
		if slug == constant.Empty {
			return failure.BadRequestFromString("slug must contain at least one letter or digit") // nolint:wrapcheck
		}

		if err = s.ensureUniqueSlug(ctx, slug, id); err != nil {
			return err
		}
	}

	thumbnail, objectName, err := s.uploadThumbnail(ctx, req.ThumbnailFile, req.Thumbnail)
	if err != nil {
		return err
	}

	fields := req.Fields(identity.FromContext(ctx).Actor(), current, s.now())
	if thumbnail != constant.Empty {
		fields[model.FieldThumbnail] = thumbnail
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		s.deleteObject(ctx, objectName)

		if shared.IsUniqueViolation(err) {
			return failure.Conflict("blog slug is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update blog")

		return fmt.Errorf("failed to update blog: %w", err)
	}

	if thumbnail != constant.Empty && current.Thumbnail != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, current.Thumbnail))
	}

	s.invalidate(ctx, current.Slug)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	blog, err := s.get(ctx, filter)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete blog")

		return fmt.Errorf("failed to delete blog: %w", err)
	}

	if blog.Thumbnail != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, blog.Thumbnail))
	}

	s.invalidate(ctx, blog.Slug)

	return nil
}

// GetPublished lists published posts, newest first.
func (s *serviceImpl) GetPublished(ctx context.Context, req gDto.QueryParams) (res dto.GetBlogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.GetPublished")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.SortBy = publishedSortField
	req.SortDir = constant.DefaultValueSortDir

	filter := shared.FilterByValue(model.FieldPublished, true, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBlog, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for blogs")

		return res, nil
	}

	res, err = s.list(ctx, req, filter)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blogs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.BlogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.GetBySlug")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBlog, slug)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for blog")

		return res, nil
	}

	filter := shared.FilterByValue(model.FieldSlug, slug, model.TableName)
	filter.Add(gDto.Filter{
		Field:    model.FieldPublished,
		Value:    true,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	blog, err := s.get(ctx, filter)
	if err != nil {
		return res, err
	}

	res.FromModel(blog)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blog to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlogsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count blogs")

		return res, fmt.Errorf("failed to count blogs: %w", err)
	}

	blogs, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blogs")

		return res, fmt.Errorf("failed to get blogs: %w", err)
	}

	res.FromModels(blogs, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (model.Blog, error) {
	blog, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog")

		return blog, fmt.Errorf("failed to get blog: %w", err)
	}

	if blog.ID == constant.Empty {
		return blog, failure.NotFound("blog not found") // nolint:wrapcheck
	}

	return blog, nil
}

func (s *serviceImpl) ensureUniqueSlug(ctx context.Context, slug, excludeID string) error {
	filter := shared.FilterByValue(model.FieldSlug, slug, model.TableName)

	if excludeID != constant.Empty {
		filter.Add(gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check blog slug")

		return fmt.Errorf("failed to check blog slug: %w", err)
	}

	if exist {
		return failure.Conflict("blog slug is already in use") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) uploadThumbnail(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	if header == nil || file == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = shared.NewObjectName(header.Filename)

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, constant.ImageDirectoryBlog, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload blog thumbnail")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload blog thumbnail: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, constant.ImageDirectoryBlog, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to delete blog thumbnail")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, slug string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if slug != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBlog, slug)); err != nil {
				log.Error().Err(err).Msg("failed to delete blog cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBlog)
	}()
}
