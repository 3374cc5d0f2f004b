package service

import (
	"context"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/entity"
	notificationDto "github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type memoryRepo struct {
	meetings map[uuid.UUID]*entity.Meeting
}

func (m *memoryRepo) Create(_ context.Context, meeting *entity.Meeting) error {
	for _, existing := range m.meetings {
		if existing.Status == entity.StatusPending && existing.EventID == meeting.EventID &&
			existing.RequesterID == meeting.RequesterID && existing.ReceiverID == meeting.ReceiverID {
			return &pq.Error{Code: "23505", Constraint: "event_meetings_open_request_key"}
		}
	}
	meeting.ID = uuid.New()
	meeting.Status = entity.StatusPending
	meeting.CreatedAt = time.Now()
	copied := *meeting
	m.meetings[meeting.ID] = &copied
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Meeting, error) {
	if meeting, ok := m.meetings[id]; ok {
		copied := *meeting
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryRepo) ListForUser(_ context.Context, eventID, userID uuid.UUID, status entity.Status) ([]entity.Meeting, error) {
	var out []entity.Meeting
	for _, meeting := range m.meetings {
		if meeting.EventID == eventID && meeting.IsParty(userID) && (status == "" || meeting.Status == status) {
			out = append(out, *meeting)
		}
	}
	return out, nil
}

func (m *memoryRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.Status) (*entity.Meeting, error) {
	meeting, ok := m.meetings[id]
	if !ok || meeting.Status != from {
		return nil, nil
	}
	meeting.Status = to
	copied := *meeting
	return &copied, nil
}

type allConfirmed struct {
	outsiders map[uuid.UUID]bool
}

func (a allConfirmed) IsConfirmed(_ context.Context, _, userID uuid.UUID) (bool, *errors.AppError) {
	return !a.outsiders[userID], nil
}

type recordingNotifier struct {
	sent []*notificationDto.CreateNotificationRequest
}

func (r *recordingNotifier) Create(_ context.Context, req *notificationDto.CreateNotificationRequest) (*notificationDto.NotificationResponse, *errors.AppError) {
	r.sent = append(r.sent, req)
	return &notificationDto.NotificationResponse{}, nil
}

type fixture struct {
	svc       *MeetingService
	repo      *memoryRepo
	notifier  *recordingNotifier
	eventID   uuid.UUID
	requester uuid.UUID
	receiver  uuid.UUID
	outsider  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:      &memoryRepo{meetings: map[uuid.UUID]*entity.Meeting{}},
		notifier:  &recordingNotifier{},
		eventID:   uuid.New(),
		requester: uuid.New(),
		receiver:  uuid.New(),
		outsider:  uuid.New(),
	}
	f.svc = NewMeetingService(f.repo, allConfirmed{}, f.notifier)
	return f
}

func (f *fixture) request(t *testing.T) uuid.UUID {
	t.Helper()
	res, appErr := f.svc.Create(context.Background(), f.eventID, f.requester, &dto.CreateMeetingRequest{ReceiverID: f.receiver})
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}
	return res.ID
}

func (f *fixture) respond(id, user uuid.UUID, action entity.Action) (*dto.MeetingResponse, *errors.AppError) {
	return f.svc.Respond(context.Background(), f.eventID, id, user, action)
}

func wantCode(t *testing.T, appErr *errors.AppError, code errors.ErrorCode) {
	t.Helper()
	if appErr == nil || appErr.Code != code {
		t.Fatalf("want %s, got %v", code, appErr)
	}
}

func TestOnlyReceiverResponds(t *testing.T) {
	for _, action := range []entity.Action{entity.ActionAccept, entity.ActionDecline} {
		t.Run(string(action), func(t *testing.T) {
			f := newFixture(t)
			id := f.request(t)

			_, appErr := f.respond(id, f.requester, action)
			wantCode(t, appErr, errors.ErrForbidden)

			_, appErr = f.respond(id, f.outsider, action)
			wantCode(t, appErr, errors.ErrNotFound)

			res, appErr := f.respond(id, f.receiver, action)
			if appErr != nil {
				t.Fatal(appErr)
			}
			if action == entity.ActionAccept && res.Status != string(entity.StatusAccepted) {
				t.Fatalf("status = %s", res.Status)
			}
		})
	}
}

func TestStaleTransitionConflicts(t *testing.T) {
	f := newFixture(t)
	id := f.request(t)

	if _, appErr := f.respond(id, f.receiver, entity.ActionDecline); appErr != nil {
		t.Fatal(appErr)
	}
	_, appErr := f.respond(id, f.receiver, entity.ActionAccept)
	wantCode(t, appErr, errors.ErrConflict)

	_, appErr = f.respond(id, f.requester, entity.ActionCancel)
	wantCode(t, appErr, errors.ErrConflict)
}

func TestOnlyRequesterCancelsWhilePending(t *testing.T) {
	f := newFixture(t)
	id := f.request(t)

	_, appErr := f.respond(id, f.receiver, entity.ActionCancel)
	wantCode(t, appErr, errors.ErrForbidden)

	res, appErr := f.respond(id, f.requester, entity.ActionCancel)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if res.Status != string(entity.StatusCanceled) {
		t.Fatalf("status = %s", res.Status)
	}

	accepted := f.request(t)
	if _, appErr := f.respond(accepted, f.receiver, entity.ActionAccept); appErr != nil {
		t.Fatal(appErr)
	}
	_, appErr = f.respond(accepted, f.requester, entity.ActionCancel)
	wantCode(t, appErr, errors.ErrConflict)
}

func TestConfirmOnlyFromAccepted(t *testing.T) {
	f := newFixture(t)
	id := f.request(t)

	_, appErr := f.respond(id, f.requester, entity.ActionConfirm)
	wantCode(t, appErr, errors.ErrConflict)

	if _, appErr := f.respond(id, f.receiver, entity.ActionAccept); appErr != nil {
		t.Fatal(appErr)
	}
	res, appErr := f.respond(id, f.requester, entity.ActionConfirm)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if res.Status != string(entity.StatusConfirmed) {
		t.Fatalf("status = %s", res.Status)
	}
}

func TestTransitionsNotifyCounterpart(t *testing.T) {
	f := newFixture(t)
	id := f.request(t)
	if _, appErr := f.respond(id, f.receiver, entity.ActionAccept); appErr != nil {
		t.Fatal(appErr)
	}

	if len(f.notifier.sent) != 2 {
		t.Fatalf("want 2 notifications, got %d", len(f.notifier.sent))
	}
	if *f.notifier.sent[0].UserID != f.receiver {
		t.Errorf("request should notify the receiver")
	}
	if *f.notifier.sent[1].UserID != f.requester {
		t.Errorf("accept should notify the requester")
	}
}

func TestCreateGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, appErr := f.svc.Create(ctx, f.eventID, f.requester, &dto.CreateMeetingRequest{ReceiverID: f.requester})
	wantCode(t, appErr, errors.ErrInvalidInput)

	f.request(t)
	_, appErr = f.svc.Create(ctx, f.eventID, f.requester, &dto.CreateMeetingRequest{ReceiverID: f.receiver})
	wantCode(t, appErr, errors.ErrAlreadyExists)

	// The reverse direction is a separate request.
	if _, appErr := f.svc.Create(ctx, f.eventID, f.receiver, &dto.CreateMeetingRequest{ReceiverID: f.requester}); appErr != nil {
		t.Fatalf("reverse request: %v", appErr)
	}

	f.svc.participants = allConfirmed{outsiders: map[uuid.UUID]bool{f.outsider: true}}
	_, appErr = f.svc.Create(ctx, f.eventID, f.requester, &dto.CreateMeetingRequest{ReceiverID: f.outsider})
	wantCode(t, appErr, errors.ErrForbidden)
}

func TestMeetingFromAnotherEventIsHidden(t *testing.T) {
	f := newFixture(t)
	id := f.request(t)

	_, appErr := f.svc.Get(context.Background(), uuid.New(), id, f.requester)
	wantCode(t, appErr, errors.ErrNotFound)
}
