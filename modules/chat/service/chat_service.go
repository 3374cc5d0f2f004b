package service

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/mapper"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/repository"
	meetingEntity "github.com/neimd2025/web-ndrop-sub000/modules/meeting/entity"

	"github.com/google/uuid"
)

const maxMessageLength = 2000

type MeetingFinder interface {
	Find(ctx context.Context, meetingID uuid.UUID) (*meetingEntity.Meeting, *errors.AppError)
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type ChatServiceInterface interface {
	SendMessage(ctx context.Context, eventID, meetingID, senderID uuid.UUID, content string) (*dto.MessageResponse, *errors.AppError)
	ListMessages(ctx context.Context, eventID, meetingID, userID uuid.UUID, cursor *entity.Cursor, limit int) (*dto.MessagePage, *errors.AppError)
	MarkRead(ctx context.Context, meetingID, userID uuid.UUID) (*dto.ReadReceiptResponse, *errors.AppError)
	GetReadReceipt(ctx context.Context, meetingID, userID uuid.UUID) (*dto.ReadReceiptResponse, *errors.AppError)
	StreamChannel(ctx context.Context, meetingID, userID uuid.UUID) (string, *errors.AppError)
}

type ChatService struct {
	repo      repository.ChatRepositoryInterface
	meetings  MeetingFinder
	publisher Publisher
}

func NewChatService(repo repository.ChatRepositoryInterface, meetings MeetingFinder, publisher Publisher) *ChatService {
	return &ChatService{repo: repo, meetings: meetings, publisher: publisher}
}

// ClampLimit applies the default and the upper bound to a page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultMessageLimit
	}
	if limit > constants.MaxMessageLimit {
		return constants.MaxMessageLimit
	}
	return limit
}

func ChannelFor(meetingID uuid.UUID) string {
	return constants.ChannelMeetingPrefix + meetingID.String()
}

func (s *ChatService) SendMessage(ctx context.Context, eventID, meetingID, senderID uuid.UUID, content string) (*dto.MessageResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLength {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Message must be between 1 and 2000 characters", nil)
	}

	if _, appErr := s.openChat(ctx, &eventID, meetingID, senderID); appErr != nil {
		return nil, appErr
	}

	message := &entity.Message{MeetingID: meetingID, SenderID: senderID, Content: content}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to send message", err)
	}

	res := mapper.ToMessageResponse(message)
	s.publish(ChannelFor(meetingID), res)
	return res, nil
}

func (s *ChatService) ListMessages(ctx context.Context, eventID, meetingID, userID uuid.UUID, cursor *entity.Cursor, limit int) (*dto.MessagePage, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.openChat(ctx, &eventID, meetingID, userID); appErr != nil {
		return nil, appErr
	}

	limit = ClampLimit(limit)
	messages, err := s.repo.ListMessages(ctx, meetingID, cursor, limit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get messages", err)
	}
	return mapper.ToMessagePage(messages, limit), nil
}

func (s *ChatService) MarkRead(ctx context.Context, meetingID, userID uuid.UUID) (*dto.ReadReceiptResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.party(ctx, nil, meetingID, userID); appErr != nil {
		return nil, appErr
	}
	if _, err := s.repo.MarkRead(ctx, meetingID, userID); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark as read", err)
	}
	return s.receipt(ctx, meetingID, userID)
}

func (s *ChatService) GetReadReceipt(ctx context.Context, meetingID, userID uuid.UUID) (*dto.ReadReceiptResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.party(ctx, nil, meetingID, userID); appErr != nil {
		return nil, appErr
	}
	return s.receipt(ctx, meetingID, userID)
}

// StreamChannel returns the pub/sub channel of a chat the user may read.
func (s *ChatService) StreamChannel(ctx context.Context, meetingID, userID uuid.UUID) (string, *errors.AppError) {
	if _, appErr := s.openChat(ctx, nil, meetingID, userID); appErr != nil {
		return "", appErr
	}
	return ChannelFor(meetingID), nil
}

func (s *ChatService) receipt(ctx context.Context, meetingID, userID uuid.UUID) (*dto.ReadReceiptResponse, *errors.AppError) {
	receipts, err := s.repo.GetReceipts(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get read receipt", err)
	}
	res := &dto.ReadReceiptResponse{MeetingID: meetingID}
	for i := range receipts {
		at := receipts[i].LastReadAt
		if receipts[i].UserID == userID {
			res.MyLastReadAt = &at
		} else {
			res.LastReadAtByOther = &at
		}
	}
	return res, nil
}

// party loads the meeting and requires userID to be one of its two members.
// A non-nil eventID must match the meeting's event.
func (s *ChatService) party(ctx context.Context, eventID *uuid.UUID, meetingID, userID uuid.UUID) (*meetingEntity.Meeting, *errors.AppError) {
	meeting, appErr := s.meetings.Find(ctx, meetingID)
	if appErr != nil {
		return nil, appErr
	}
	if eventID != nil && meeting.EventID != *eventID {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting not found", nil)
	}
	if !meeting.IsParty(userID) {
		return nil, errors.NewAppError(errors.ErrChatUnavailable, "Chat is not available", nil)
	}
	return meeting, nil
}

// openChat is party plus the accepted or confirmed status requirement.
func (s *ChatService) openChat(ctx context.Context, eventID *uuid.UUID, meetingID, userID uuid.UUID) (*meetingEntity.Meeting, *errors.AppError) {
	meeting, appErr := s.party(ctx, eventID, meetingID, userID)
	if appErr != nil {
		return nil, appErr
	}
	if !meeting.Status.ChatOpen() {
		return nil, errors.NewAppError(errors.ErrChatUnavailable, "Chat is not available", nil)
	}
	return meeting, nil
}

func (s *ChatService) publish(channel string, message *dto.MessageResponse) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Error("ChatService:Publish:Marshal", "error", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.PublishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, channel, payload); err != nil {
			logger.Warn("ChatService:Publish:Failed", "channel", channel, "error", err)
		}
	}()
}
