package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	coreValidator "github.com/neimd2025/web-ndrop-sub000/core/validator"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeRepo struct {
	created []*entity.Notification
	events  map[uuid.UUID]bool
	joined  []uuid.UUID
}

func (f *fakeRepo) Create(_ context.Context, n *entity.Notification) error {
	n.ID = uuid.New()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	for _, n := range f.created {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) EventExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.events[id], nil
}

func (f *fakeRepo) ListForUser(context.Context, uuid.UUID, params.QueryParams) (*entity.PaginatedUserNotification, error) {
	return &entity.PaginatedUserNotification{}, nil
}

func (f *fakeRepo) MarkAsRead(context.Context, uuid.UUID, []uuid.UUID) (int64, error) { return 0, nil }
func (f *fakeRepo) MarkAllAsRead(context.Context, uuid.UUID) (int64, error)           { return 0, nil }
func (f *fakeRepo) CountUnread(context.Context, uuid.UUID) (int, error)               { return 0, nil }

func (f *fakeRepo) JoinedEventIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return f.joined, nil
}

type fakeQueue struct {
	types []string
}

func (f *fakeQueue) Enqueue(_ context.Context, taskType string, _ any, _ ...asynq.Option) error {
	f.types = append(f.types, taskType)
	return nil
}

type fakePublisher struct {
	channels []string
	payloads [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestCreateRequiresTargetFields(t *testing.T) {
	svc := NewNotificationService(&fakeRepo{}, &fakeQueue{}, &fakePublisher{})

	tests := []struct {
		name  string
		req   dto.CreateNotificationRequest
		field string
	}{
		{"specific without user", dto.CreateNotificationRequest{Title: "t", Message: "m", TargetType: "specific"}, "user_id"},
		{"event without event id", dto.CreateNotificationRequest{Title: "t", Message: "m", TargetType: "event_participants"}, "target_event_id"},
		{"unknown target", dto.CreateNotificationRequest{Title: "t", Message: "m", TargetType: "everyone"}, "target_type"},
		{"missing title", dto.CreateNotificationRequest{Message: "m", TargetType: "all"}, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.Create(context.Background(), &tt.req)
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("want INVALID_INPUT, got %v", appErr)
			}
			fields, ok := appErr.Details.([]coreValidator.FieldError)
			if !ok {
				t.Fatalf("details = %#v, want field errors", appErr.Details)
			}
			found := false
			for _, fe := range fields {
				found = found || fe.Field == tt.field
			}
			if !found {
				t.Errorf("details %+v missing field %q", fields, tt.field)
			}
		})
	}
}

func TestCreateUnknownEvent(t *testing.T) {
	svc := NewNotificationService(&fakeRepo{events: map[uuid.UUID]bool{}}, &fakeQueue{}, nil)
	eventID := uuid.New()
	_, appErr := svc.Create(context.Background(), &dto.CreateNotificationRequest{
		Title: "t", Message: "m", TargetType: "event_participants", TargetEventID: &eventID,
	})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("want NOT_FOUND, got %v", appErr)
	}
}

func TestCreateStoresOneRowAndEnqueues(t *testing.T) {
	repo := &fakeRepo{}
	q := &fakeQueue{}
	svc := NewNotificationService(repo, q, nil)

	userID := uuid.New()
	eventID := uuid.New()
	res, appErr := svc.Create(context.Background(), &dto.CreateNotificationRequest{
		Title: "hi", Message: "there", TargetType: "specific", UserID: &userID, TargetEventID: &eventID,
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(repo.created) != 1 {
		t.Fatalf("want 1 row, got %d", len(repo.created))
	}
	if res.TargetEventID != nil {
		t.Errorf("target_event_id should be dropped for specific target")
	}
	if res.Type != entity.TypeNotice {
		t.Errorf("default type = %q", res.Type)
	}
	if len(q.types) != 1 {
		t.Fatalf("want one enqueued task, got %v", q.types)
	}
}

func TestDeliverPublishesToTargetChannel(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	svc := NewNotificationService(repo, nil, pub)

	eventID := uuid.New()
	repo.events = map[uuid.UUID]bool{eventID: true}
	res, appErr := svc.Create(context.Background(), &dto.CreateNotificationRequest{
		Title: "t", Message: "m", TargetType: "event_participants", TargetEventID: &eventID,
	})
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	if err := svc.Deliver(context.Background(), res.ID); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(pub.channels) != 1 || pub.channels[0] != constants.ChannelNotificationEvt+eventID.String() {
		t.Fatalf("published to %v", pub.channels)
	}
	var got dto.RealtimeNotification
	if err := json.Unmarshal(pub.payloads[0], &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.ID != res.ID {
		t.Errorf("payload id = %s, want %s", got.ID, res.ID)
	}
}

func TestDeliverMissingNotificationIsNoop(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewNotificationService(&fakeRepo{}, nil, pub)
	if err := svc.Deliver(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.channels) != 0 {
		t.Fatalf("nothing should be published")
	}
}

func TestStreamChannels(t *testing.T) {
	eventID := uuid.New()
	svc := NewNotificationService(&fakeRepo{joined: []uuid.UUID{eventID}}, nil, nil)
	userID := uuid.New()

	channels, appErr := svc.StreamChannels(context.Background(), userID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	want := []string{
		constants.ChannelNotificationUser + userID.String(),
		constants.ChannelNotificationAll,
		constants.ChannelNotificationEvt + eventID.String(),
	}
	if len(channels) != len(want) {
		t.Fatalf("got %v", channels)
	}
	for i := range want {
		if channels[i] != want[i] {
			t.Errorf("channel %d = %q, want %q", i, channels[i], want[i])
		}
	}
}

func TestChannelForMissingTarget(t *testing.T) {
	if got := ChannelFor(&entity.Notification{TargetType: entity.TargetSpecific}); got != "" {
		t.Errorf("got %q", got)
	}
}
