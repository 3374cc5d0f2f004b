package service

import (
	"context"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	eventDto "github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	eventEntity "github.com/neimd2025/web-ndrop-sub000/modules/event/entity"
	notificationDto "github.com/neimd2025/web-ndrop-sub000/modules/notification/dto"
	notificationEntity "github.com/neimd2025/web-ndrop-sub000/modules/notification/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/repository"

	"github.com/google/uuid"
)

type key struct{ event, user uuid.UUID }

// memoryRepo mirrors the transactional rules of ParticipantRepository.
type memoryRepo struct {
	capacity map[uuid.UUID]int
	rows     map[key]*entity.Participant
	cards    map[uuid.UUID]card
}

type card struct {
	name   string
	public bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{capacity: map[uuid.UUID]int{}, rows: map[key]*entity.Participant{}, cards: map[uuid.UUID]card{}}
}

func (m *memoryRepo) confirmed(eventID uuid.UUID) int {
	n := 0
	for k, p := range m.rows {
		if k.event == eventID && p.Status == entity.StatusConfirmed {
			n++
		}
	}
	return n
}

func (m *memoryRepo) Join(_ context.Context, eventID, userID uuid.UUID) (*entity.Participant, error) {
	limit, ok := m.capacity[eventID]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	if p, ok := m.rows[key{eventID, userID}]; ok {
		if p.Status == entity.StatusRemoved {
			return nil, repository.ErrRemoved
		}
		return nil, repository.ErrAlreadyJoined
	}
	if limit > 0 && m.confirmed(eventID) >= limit {
		return nil, repository.ErrEventFull
	}
	p := &entity.Participant{ID: uuid.New(), EventID: eventID, UserID: userID, Status: entity.StatusConfirmed, JoinedAt: time.Now()}
	m.rows[key{eventID, userID}] = p
	return p, nil
}

func (m *memoryRepo) Leave(_ context.Context, eventID, userID uuid.UUID) error {
	p, ok := m.rows[key{eventID, userID}]
	if !ok || p.Status != entity.StatusConfirmed {
		return repository.ErrNotParticipant
	}
	delete(m.rows, key{eventID, userID})
	return nil
}

func (m *memoryRepo) Remove(_ context.Context, eventID, userID uuid.UUID) (*entity.Participant, error) {
	if _, ok := m.capacity[eventID]; !ok {
		return nil, repository.ErrEventNotFound
	}
	p, ok := m.rows[key{eventID, userID}]
	if !ok {
		p = &entity.Participant{ID: uuid.New(), EventID: eventID, UserID: userID}
		m.rows[key{eventID, userID}] = p
	}
	p.Status = entity.StatusRemoved
	return p, nil
}

func (m *memoryRepo) List(_ context.Context, eventID, viewerID uuid.UUID, includeAll bool) ([]entity.ParticipantDetail, error) {
	var out []entity.ParticipantDetail
	for k, p := range m.rows {
		if k.event != eventID || !(includeAll || p.Status == entity.StatusConfirmed) {
			continue
		}
		detail := entity.ParticipantDetail{Participant: *p}
		if c, ok := m.cards[k.user]; ok && (includeAll || c.public || k.user == viewerID) {
			name := c.name
			detail.FullName = &name
		}
		out = append(out, detail)
	}
	return out, nil
}

func (m *memoryRepo) IsConfirmed(_ context.Context, eventID, userID uuid.UUID) (bool, error) {
	p, ok := m.rows[key{eventID, userID}]
	return ok && p.Status == entity.StatusConfirmed, nil
}

func (m *memoryRepo) ListMyEvents(context.Context, uuid.UUID) ([]eventEntity.Event, error) {
	return nil, nil
}

func (m *memoryRepo) ReconcileCounts(context.Context) (int64, error) { return 0, nil }

type fakeEvents struct {
	byID   map[uuid.UUID]*eventDto.EventResponse
	lookup []string
}

func (f *fakeEvents) GetByID(_ context.Context, id uuid.UUID) (*eventDto.EventResponse, *errors.AppError) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
}

func (f *fakeEvents) FindByCode(_ context.Context, code string) (*eventDto.EventResponse, *errors.AppError) {
	f.lookup = append(f.lookup, code)
	for _, e := range f.byID {
		if e.EventCode == code {
			return e, nil
		}
	}
	return nil, nil
}

type fakeNotifier struct {
	sent []*notificationDto.CreateNotificationRequest
}

func (f *fakeNotifier) Create(_ context.Context, req *notificationDto.CreateNotificationRequest) (*notificationDto.NotificationResponse, *errors.AppError) {
	f.sent = append(f.sent, req)
	return &notificationDto.NotificationResponse{}, nil
}

type fixture struct {
	svc      *ParticipantService
	repo     *memoryRepo
	notifier *fakeNotifier
	eventID  uuid.UUID
}

func newFixture(capacity int) *fixture {
	eventID := uuid.New()
	repo := newMemoryRepo()
	repo.capacity[eventID] = capacity
	events := &fakeEvents{byID: map[uuid.UUID]*eventDto.EventResponse{
		eventID: {ID: eventID, Title: "Demo Day", EventCode: "AB12CD"},
	}}
	notifier := &fakeNotifier{}
	return &fixture{
		svc:      NewParticipantService(repo, events, notifier),
		repo:     repo,
		notifier: notifier,
		eventID:  eventID,
	}
}

func (f *fixture) join(userID uuid.UUID) *errors.AppError {
	_, appErr := f.svc.Join(context.Background(), userID, &dto.JoinEventRequest{EventID: &f.eventID})
	return appErr
}

func TestJoinTwiceIsRejected(t *testing.T) {
	f := newFixture(0)
	user := uuid.New()

	if appErr := f.join(user); appErr != nil {
		t.Fatalf("first join: %v", appErr)
	}
	appErr := f.join(user)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("second join: want ALREADY_EXISTS, got %v", appErr)
	}
	if n := f.repo.confirmed(f.eventID); n != 1 {
		t.Fatalf("want 1 confirmed row, got %d", n)
	}
}

func TestRemovedUserCannotRejoin(t *testing.T) {
	f := newFixture(0)
	user := uuid.New()

	if appErr := f.join(user); appErr != nil {
		t.Fatal(appErr)
	}
	if _, appErr := f.svc.Remove(context.Background(), f.eventID, user); appErr != nil {
		t.Fatal(appErr)
	}
	for i := 0; i < 3; i++ {
		appErr := f.join(user)
		if appErr == nil || appErr.Code != errors.ErrParticipantRemoved {
			t.Fatalf("rejoin %d: want PARTICIPANT_REMOVED, got %v", i, appErr)
		}
	}
	if appErr := f.svc.Leave(context.Background(), user, f.eventID); appErr == nil {
		t.Fatalf("a removed user must not be able to clear the ban by leaving")
	}
}

func TestRemoveNeverJoinedStillBans(t *testing.T) {
	f := newFixture(0)
	user := uuid.New()

	if _, appErr := f.svc.Remove(context.Background(), f.eventID, user); appErr != nil {
		t.Fatal(appErr)
	}
	if appErr := f.join(user); appErr == nil || appErr.Code != errors.ErrParticipantRemoved {
		t.Fatalf("want PARTICIPANT_REMOVED, got %v", appErr)
	}
}

func TestJoinFullEvent(t *testing.T) {
	f := newFixture(1)
	if appErr := f.join(uuid.New()); appErr != nil {
		t.Fatal(appErr)
	}
	appErr := f.join(uuid.New())
	if appErr == nil || appErr.Code != errors.ErrEventFull {
		t.Fatalf("want EVENT_FULL, got %v", appErr)
	}
}

func TestJoinByUnknownCodeMutatesNothing(t *testing.T) {
	f := newFixture(0)
	_, appErr := f.svc.Join(context.Background(), uuid.New(), &dto.JoinEventRequest{EventCode: "ZZ99ZZ"})
	if appErr == nil || appErr.Code != errors.ErrInvalidEventCode {
		t.Fatalf("want INVALID_EVENT_CODE, got %v", appErr)
	}
	if len(f.repo.rows) != 0 || len(f.notifier.sent) != 0 {
		t.Fatalf("invalid code mutated state")
	}
}

func TestJoinByCodeNotifiesUser(t *testing.T) {
	f := newFixture(0)
	user := uuid.New()

	res, appErr := f.svc.Join(context.Background(), user, &dto.JoinEventRequest{EventCode: "AB12CD"})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if res.EventTitle != "Demo Day" || res.Participant.Status != string(entity.StatusConfirmed) {
		t.Fatalf("unexpected response %+v", res)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("want one notification, got %d", len(f.notifier.sent))
	}
	n := f.notifier.sent[0]
	if n.Type != notificationEntity.TypeEventJoined || n.UserID == nil || *n.UserID != user {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestJoinRequiresTarget(t *testing.T) {
	f := newFixture(0)
	_, appErr := f.svc.Join(context.Background(), uuid.New(), &dto.JoinEventRequest{})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("want INVALID_INPUT, got %v", appErr)
	}
}

func TestGetParticipantsFiltersRemovedForUsers(t *testing.T) {
	f := newFixture(0)
	a, b := uuid.New(), uuid.New()
	_ = f.join(a)
	_ = f.join(b)
	_, _ = f.svc.Remove(context.Background(), f.eventID, b)

	user, appErr := f.svc.GetParticipants(context.Background(), f.eventID, a)
	if appErr != nil {
		t.Fatal(appErr)
	}
	admin, _ := f.svc.GetAllParticipants(context.Background(), f.eventID)
	if len(user) != 1 || user[0].UserID != a {
		t.Fatalf("user view = %+v", user)
	}
	if len(admin) != 2 {
		t.Fatalf("admin view = %+v", admin)
	}
}

func TestGetParticipantsRequiresConfirmedViewer(t *testing.T) {
	f := newFixture(0)
	member, banned := uuid.New(), uuid.New()
	_ = f.join(member)
	_ = f.join(banned)
	_, _ = f.svc.Remove(context.Background(), f.eventID, banned)

	for name, viewer := range map[string]uuid.UUID{"outsider": uuid.New(), "removed": banned} {
		_, appErr := f.svc.GetParticipants(context.Background(), f.eventID, viewer)
		if appErr == nil || appErr.Code != errors.ErrForbidden {
			t.Errorf("%s: want FORBIDDEN, got %v", name, appErr)
		}
	}
}

func TestGetParticipantsHidesPrivateCards(t *testing.T) {
	f := newFixture(0)
	hidden, viewer := uuid.New(), uuid.New()
	_ = f.join(hidden)
	_ = f.join(viewer)
	f.repo.cards[hidden] = card{name: "Private Person", public: false}
	f.repo.cards[viewer] = card{name: "Open Person", public: true}

	names := func(rows []dto.ParticipantResponse) map[uuid.UUID]string {
		out := map[uuid.UUID]string{}
		for _, r := range rows {
			out[r.UserID] = r.FullName
		}
		return out
	}

	rows, appErr := f.svc.GetParticipants(context.Background(), f.eventID, viewer)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if got := names(rows); got[hidden] != "" || got[viewer] != "Open Person" {
		t.Fatalf("other participant view = %+v", got)
	}

	rows, _ = f.svc.GetParticipants(context.Background(), f.eventID, hidden)
	if got := names(rows)[hidden]; got != "Private Person" {
		t.Fatalf("owner sees own card as %q", got)
	}

	rows, _ = f.svc.GetAllParticipants(context.Background(), f.eventID)
	if got := names(rows)[hidden]; got != "Private Person" {
		t.Fatalf("admin sees private card as %q", got)
	}
}
