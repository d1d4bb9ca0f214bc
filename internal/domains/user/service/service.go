package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	blogModel "hotel/internal/domains/blog/model"
	blogRepo "hotel/internal/domains/blog/repository"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetProfile(ctx context.Context) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) error
}

type serviceImpl struct {
	repo        repository.User
	bookingRepo bookingRepo.Booking
	blogRepo    blogRepo.Blog
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.User, bookingRepo bookingRepo.Booking, blogRepo blogRepo.Blog, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		blogRepo:    blogRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUnique(ctx, model.FieldUsername, req.Username, constant.Empty); err != nil {
		return res, err
	}

	if err = s.ensureUnique(ctx, model.FieldEmail, req.Email, constant.Empty); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(identity.FromContext(ctx).Actor(), hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("username or email is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if req.Username != constant.Empty {
		if err = s.ensureUnique(ctx, model.FieldUsername, req.Username, id); err != nil {
			return err
		}
	}

	if req.Email != constant.Empty {
		if err = s.ensureUnique(ctx, model.FieldEmail, req.Email, id); err != nil {
			return err
		}
	}

	fields := req.Fields(identity.FromContext(ctx).Actor())

	if req.Password != constant.Empty {
		hashedPassword, err := password.Hash(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return fmt.Errorf("failed to hash password: %w", err)
		}

		fields[model.FieldPasswordHash] = hashedPassword
	}

	return s.update(ctx, fields, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if identity.FromContext(ctx).UserID == id {
		return failure.BadRequestFromString("you cannot delete your own account") // nolint:wrapcheck
	}

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	hasBookings, err := s.bookingRepo.Exist(ctx, shared.FilterByValue(bookingModel.FieldUserID, id, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check user bookings")

		return fmt.Errorf("failed to check user bookings: %w", err)
	}

	if hasBookings {
		return failure.Conflict("user still owns bookings") // nolint:wrapcheck
	}

	hasBlogs, err := s.blogRepo.Exist(ctx, shared.FilterByValue(blogModel.FieldAuthorID, id, blogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check user blogs")

		return fmt.Errorf("failed to check user blogs: %w", err)
	}

	if hasBlogs {
		return failure.Conflict("user still authors blog posts") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetProfile(ctx context.Context) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, identity.FromContext(ctx).UserID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id := identity.FromContext(ctx)

	if _, err = s.get(ctx, id.UserID); err != nil {
		return err
	}

	if err = s.ensureUnique(ctx, model.FieldEmail, req.Email, id.UserID); err != nil {
		return err
	}

	return s.update(ctx, req.Fields(id.Actor()), id.UserID)
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, id string) error {
	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("username or email is already in use") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// ensureUnique rejects value when another user than excludeID already uses it.
func (s *serviceImpl) ensureUnique(ctx context.Context, field, value, excludeID string) error {
	taken, err := s.repo.Taken(ctx, field, value, excludeID)
	if err != nil {
		log.Error().Err(err).Str("field", field).Msg("failed to check user uniqueness")

		return fmt.Errorf("failed to check user uniqueness: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("%s is already in use", field)) // nolint:wrapcheck
	}

	return nil
}
