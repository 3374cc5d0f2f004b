package service

import (
	"context"
	stderrors "errors"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/core/storage"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/mapper"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/repository"
	notificationDto "github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	notificationEntity "github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"

	"github.com/google/uuid"
)

const profileImageFolder = "profiles"

type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) (*notificationDto.NotificationResponse, *errors.AppError)
}

// Uploader stores profile images.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, data []byte) (*storage.UploadedImage, error)
}

type CardServiceInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, *errors.AppError)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, *errors.AppError)
	UploadProfileImage(ctx context.Context, userID uuid.UUID, req *dto.UpsertProfileRequest, file *dto.ImageFile) (*dto.ProfileResponse, *errors.AppError)
	SetCardVisibility(ctx context.Context, userID uuid.UUID, public bool) (*dto.CardResponse, *errors.AppError)
	GetCard(ctx context.Context, cardID, viewerID uuid.UUID) (*dto.CardResponse, *errors.AppError)
	CollectCard(ctx context.Context, collectorID uuid.UUID, req *dto.CollectCardRequest) (*dto.CollectedCardResponse, *errors.AppError)
	ListCollected(ctx context.Context, collectorID uuid.UUID, params params.QueryParams) (*dto.PaginatedCollectedCardResponse, *errors.AppError)
	RemoveCollected(ctx context.Context, collectorID, id uuid.UUID) *errors.AppError
}

type CardService struct {
	repo     repository.CardRepositoryInterface
	uploader Uploader
	notifier Notifier
}

// NewCardService builds the service. uploader may be nil when object storage is
// not configured; image uploads then degrade to a warning.
func NewCardService(repo repository.CardRepositoryInterface, uploader Uploader, notifier Notifier) *CardService {
	return &CardService{repo: repo, uploader: uploader, notifier: notifier}
}

func (s *CardService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get profile", err)
	}
	if profile == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Profile not found", nil)
	}
	card, err := s.repo.GetCardByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get business card", err)
	}
	return mapper.ToProfileResponse(profile, card), nil
}

// UpsertProfile saves the profile and regenerates the business card.
func (s *CardService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.upsert(ctx, userID, req)
}

func (s *CardService) upsert(ctx context.Context, userID uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, *errors.AppError) {
	profile := mapper.ToProfileEntity(userID, req)
	card, err := s.repo.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to save profile", err)
	}
	return mapper.ToProfileResponse(profile, card), nil
}

// UploadProfileImage optionally saves profile data, then stores the image.
// A failed upload keeps the saved profile and reports a warning.
func (s *CardService) UploadProfileImage(ctx context.Context, userID uuid.UUID, req *dto.UpsertProfileRequest, file *dto.ImageFile) (*dto.ProfileResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var (
		resp   *dto.ProfileResponse
		appErr *errors.AppError
	)
	if req != nil {
		resp, appErr = s.upsert(ctx, userID, req)
	} else {
		resp, appErr = s.GetProfile(ctx, userID)
	}
	if appErr != nil {
		return nil, appErr
	}
	if file == nil {
		return resp, nil
	}

	if s.uploader == nil {
		resp.Warning = "Image storage is not configured; profile saved without image"
		return resp, nil
	}
	uploaded, err := s.uploader.Upload(ctx, profileImageFolder, file.Filename, file.Data)
	if err != nil {
		logger.Warn("CardService:UploadProfileImage:UploadFailed", "user_id", userID, "error", err)
		resp.Warning = "Image upload failed; profile saved without image"
		return resp, nil
	}

	card, err := s.repo.SetProfileImage(ctx, userID, uploaded.URL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to save profile image", err)
	}
	resp.ProfileImageURL = card.ProfileImageURL
	resp.Card = mapper.ToCardResponse(card)
	resp.UpdatedAt = card.UpdatedAt
	return resp, nil
}

func (s *CardService) SetCardVisibility(ctx context.Context, userID uuid.UUID, public bool) (*dto.CardResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	card, err := s.repo.SetVisibility(ctx, userID, public)
	if stderrors.Is(err, repository.ErrProfileNotFound) {
		return nil, errors.NewAppError(errors.ErrNotFound, "Profile not found", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update card visibility", err)
	}
	return mapper.ToCardResponse(card), nil
}

// GetCard hides private cards from everyone but their owner.
func (s *CardService) GetCard(ctx context.Context, cardID, viewerID uuid.UUID) (*dto.CardResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	card, appErr := s.visibleCard(ctx, cardID, viewerID)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToCardResponse(card), nil
}

func (s *CardService) visibleCard(ctx context.Context, cardID, viewerID uuid.UUID) (*entity.BusinessCard, *errors.AppError) {
	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get business card", err)
	}
	if card == nil || !card.VisibleTo(viewerID) {
		return nil, errors.NewAppError(errors.ErrNotFound, "Business card not found", nil)
	}
	return card, nil
}

func (s *CardService) CollectCard(ctx context.Context, collectorID uuid.UUID, req *dto.CollectCardRequest) (*dto.CollectedCardResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	card, appErr := s.visibleCard(ctx, req.CardID, collectorID)
	if appErr != nil {
		return nil, appErr
	}
	if card.UserID == collectorID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cannot collect your own card", nil)
	}

	collected := &entity.CollectedCard{CollectorID: collectorID, CardID: card.ID, Memo: req.Memo}
	if err := s.repo.Collect(ctx, collected); err != nil {
		if database.IsUniqueViolation(err, repository.CollectedConstraint) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "Card already collected", nil)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to collect card", err)
	}

	s.notify(ctx, card.UserID, collectorID)

	return mapper.ToCollectedCardResponse(&entity.CollectedCardDetail{
		CollectedCard:   *collected,
		OwnerID:         card.UserID,
		FullName:        card.FullName,
		Company:         card.Company,
		JobTitle:        card.JobTitle,
		ProfileImageURL: card.ProfileImageURL,
	}), nil
}

func (s *CardService) ListCollected(ctx context.Context, collectorID uuid.UUID, params params.QueryParams) (*dto.PaginatedCollectedCardResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.ListCollected(ctx, collectorID, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get collected cards", err)
	}
	return mapper.ToCollectedCardPaginationResponse(page), nil
}

func (s *CardService) RemoveCollected(ctx context.Context, collectorID, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	removed, err := s.repo.RemoveCollected(ctx, collectorID, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to remove collected card", err)
	}
	if !removed {
		return errors.NewAppError(errors.ErrNotFound, "Collected card not found", nil)
	}
	return nil
}

func (s *CardService) notify(ctx context.Context, ownerID, collectorID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	_, appErr := s.notifier.Create(ctx, &notificationDto.CreateNotificationRequest{
		Title:      "Your card was collected",
		Message:    "Someone saved your business card.",
		Type:       notificationEntity.TypeCardCollected,
		TargetType: string(notificationEntity.TargetSpecific),
		UserID:     &ownerID,
		Metadata:   map[string]any{"collector_id": collectorID.String()},
	})
	if appErr != nil {
		logger.Warn("CardService:Notify:Failed", "owner_id", ownerID, "error", appErr)
	}
}
