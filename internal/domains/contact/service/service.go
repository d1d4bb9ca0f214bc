package service

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/mail"
	"hotel/infras/otel"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	messageReplied        = "reply saved"
	messageReplyNotSent   = "reply saved, but the email could not be sent"
	messageMailNotEnabled = "reply saved, but outgoing mail is not configured"
)

type Contact interface {
	Submit(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetContactsResponse, error)
	Get(ctx context.Context, id string) (dto.ContactResponse, error)
	Reply(ctx context.Context, req dto.ReplyContactRequest, id string) (dto.ReplyContactResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo   repository.Contact
	mailer mail.Mailer
	cfg    *config.Config
	otel   otel.Otel
}

func New(repo repository.Contact, mailer mail.Mailer, cfg *config.Config, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
		otel:   otel,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contact := req.ToModel(identity.FromContext(ctx).Actor())

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to save contact message")

		return res, fmt.Errorf("failed to save contact message: %w", err)
	}

	res.FromModel(contact)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetContactsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contacts")

		return res, fmt.Errorf("failed to count contacts: %w", err)
	}

	contacts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contacts")

		return res, fmt.Errorf("failed to get contacts: %w", err)
	}

	res.FromModels(contacts, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contact, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(contact)

	return res, nil
}

// Reply stores the answer and mails it to the sender. The reply is kept even when mailing fails.
func (s *serviceImpl) Reply(ctx context.Context, req dto.ReplyContactRequest, id string) (res dto.ReplyContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Reply")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contact, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	actor := identity.FromContext(ctx).Actor()
	now := timezone.Now()
	status := req.StatusOrDefault()

	fields := map[string]any{
		model.FieldReplyContent:  req.ReplyContent,
		model.FieldStatus:        status,
		model.FieldRepliedBy:     actor,
		model.FieldRepliedAt:     now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save contact reply")

		return res, fmt.Errorf("failed to save contact reply: %w", err)
	}

	res = dto.ReplyContactResponse{ID: contact.ID, Status: status, Message: messageReplied}

	body := fmt.Sprintf("Dear %s,\n\n%s\n\n---\nYour message:\n%s\n\n%s",
		contact.Name, req.ReplyContent, contact.Message, s.cfg.Mail.FromName)

	err = s.mailer.Send(ctx, mail.Mail{
		To:      contact.Email,
		Subject: fmt.Sprintf("%s - reply to your message", s.cfg.Mail.FromName),
		Body:    body,
	})

	switch {
	case err == nil:
	case errors.Is(err, mail.ErrMailDisabled):
		log.Warn().Str("contact_id", contact.ID).Msg("mail is disabled, contact reply was not sent")

		res.Message = messageMailNotEnabled
	default:
		log.Warn().Err(err).Str("contact_id", contact.ID).Msg("failed to send contact reply")

		res.Message = messageReplyNotSent
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete contact")

		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Contact, error) {
	contact, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact")

		return contact, fmt.Errorf("failed to get contact: %w", err)
	}

	if contact.ID == constant.Empty {
		return contact, failure.NotFound("contact not found") // nolint:wrapcheck
	}

	return contact, nil
}
