package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// recordingRepo keeps events in memory and records every call.
type recordingRepo struct {
	events    map[uuid.UUID]*entity.Event
	calls     []string
	createErr []error
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{events: map[uuid.UUID]*entity.Event{}}
}

func (r *recordingRepo) Create(_ context.Context, e *entity.Event) error {
	r.calls = append(r.calls, "Create")
	if len(r.createErr) > 0 {
		err := r.createErr[0]
		r.createErr = r.createErr[1:]
		return err
	}
	e.ID = uuid.New()
	copied := *e
	r.events[e.ID] = &copied
	return nil
}

func (r *recordingRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	r.calls = append(r.calls, "GetByID")
	if e, ok := r.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (r *recordingRepo) GetByCode(_ context.Context, code string) (*entity.Event, error) {
	r.calls = append(r.calls, "GetByCode")
	for _, e := range r.events {
		if e.EventCode == code {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *recordingRepo) List(context.Context, params.QueryParams) (*entity.PaginatedEvent, error) {
	r.calls = append(r.calls, "List")
	return &entity.PaginatedEvent{}, nil
}

func (r *recordingRepo) Update(_ context.Context, e *entity.Event, checkCapacity bool) (bool, error) {
	r.calls = append(r.calls, "Update")
	current, ok := r.events[e.ID]
	if !ok {
		return false, nil
	}
	if checkCapacity && e.MaxParticipants != 0 && e.MaxParticipants < current.CurrentParticipants {
		return false, nil
	}
	copied := *e
	r.events[e.ID] = &copied
	return true, nil
}

func (r *recordingRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.calls = append(r.calls, "Delete")
	_, ok := r.events[id]
	delete(r.events, id)
	return ok, nil
}

func (r *recordingRepo) mutations() []string {
	var out []string
	for _, c := range r.calls {
		if c == "Create" || c == "Update" || c == "Delete" {
			out = append(out, c)
		}
	}
	return out
}

func validCreate() *dto.CreateEventRequest {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &dto.CreateEventRequest{
		Title:     "Meetup",
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
	}
}

func TestFindByCodeUnknownReturnsNilWithoutMutation(t *testing.T) {
	repo := newRecordingRepo()
	svc := NewEventService(repo, "https://ndrop.example")

	got, appErr := svc.FindByCode(context.Background(), "AB12CD")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if got != nil {
		t.Fatalf("want nil event, got %+v", got)
	}
	if m := repo.mutations(); len(m) != 0 {
		t.Fatalf("lookup mutated state: %v", m)
	}
}

func TestFindByCodeMalformedSkipsLookup(t *testing.T) {
	repo := newRecordingRepo()
	svc := NewEventService(repo, "")

	for _, code := range []string{"", "ABC", "AB12CDE", "AB-2CD"} {
		got, appErr := svc.FindByCode(context.Background(), code)
		if got != nil || appErr != nil {
			t.Errorf("FindByCode(%q) = %v, %v", code, got, appErr)
		}
	}
	if len(repo.calls) != 0 {
		t.Fatalf("malformed codes hit the repository: %v", repo.calls)
	}
}

func TestFindByCodeNormalizesCase(t *testing.T) {
	repo := newRecordingRepo()
	svc := NewEventService(repo, "")
	svc.newCode = func() (string, error) { return "XY34ZW", nil }

	created, appErr := svc.Create(context.Background(), validCreate())
	if appErr != nil {
		t.Fatal(appErr)
	}
	got, appErr := svc.FindByCode(context.Background(), " xy34zw ")
	if appErr != nil || got == nil || got.ID != created.ID {
		t.Fatalf("FindByCode = %v, %v", got, appErr)
	}
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	svc := NewEventService(newRecordingRepo(), "")
	req := validCreate()
	req.EndDate = req.StartDate

	_, appErr := svc.Create(context.Background(), req)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("want INVALID_INPUT, got %v", appErr)
	}
}

func TestCreateRetriesOnCodeCollision(t *testing.T) {
	repo := newRecordingRepo()
	collision := &pq.Error{Code: "23505", Constraint: "events_event_code_key"}
	repo.createErr = []error{collision, collision}
	svc := NewEventService(repo, "")

	res, appErr := svc.Create(context.Background(), validCreate())
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(repo.mutations()) != 3 {
		t.Fatalf("want 3 insert attempts, got %v", repo.mutations())
	}
	if len(res.EventCode) != 6 {
		t.Errorf("event code = %q", res.EventCode)
	}
}

func TestCreateGivesUpAfterMaxAttempts(t *testing.T) {
	repo := newRecordingRepo()
	collision := &pq.Error{Code: "23505", Constraint: "events_event_code_key"}
	for i := 0; i < maxCodeAttempts; i++ {
		repo.createErr = append(repo.createErr, collision)
	}
	svc := NewEventService(repo, "")

	_, appErr := svc.Create(context.Background(), validCreate())
	if appErr == nil || appErr.Code != errors.ErrCreateFailed {
		t.Fatalf("want CREATE_FAILED, got %v", appErr)
	}
}

func TestResponseCarriesComputedStatus(t *testing.T) {
	svc := NewEventService(newRecordingRepo(), "")
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC) }

	res, appErr := svc.Create(context.Background(), validCreate())
	if appErr != nil {
		t.Fatal(appErr)
	}
	if res.Status != string(entity.StatusOngoing) {
		t.Fatalf("status = %s", res.Status)
	}
}

func TestUpdateValidatesMergedDates(t *testing.T) {
	svc := NewEventService(newRecordingRepo(), "")
	created, _ := svc.Create(context.Background(), validCreate())

	early := created.StartDate.Add(-time.Hour)
	_, appErr := svc.Update(context.Background(), created.ID, &dto.UpdateEventRequest{EndDate: &early})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("want INVALID_INPUT, got %v", appErr)
	}
}

func TestUpdateRejectsCapBelowHeadCount(t *testing.T) {
	repo := newRecordingRepo()
	svc := NewEventService(repo, "")
	created, _ := svc.Create(context.Background(), validCreate())
	repo.events[created.ID].CurrentParticipants = 5

	limit := 3
	_, appErr := svc.Update(context.Background(), created.ID, &dto.UpdateEventRequest{MaxParticipants: &limit})
	if appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("want CONFLICT, got %v", appErr)
	}

	title := "Renamed"
	res, appErr := svc.Update(context.Background(), created.ID, &dto.UpdateEventRequest{Title: &title})
	if appErr != nil || res.Title != "Renamed" {
		t.Fatalf("partial update = %v, %v", res, appErr)
	}
}

func TestUpdateWithoutCapChangeIgnoresDriftedCount(t *testing.T) {
	repo := newRecordingRepo()
	svc := NewEventService(repo, "")
	req := validCreate()
	req.MaxParticipants = 3
	created, appErr := svc.Create(context.Background(), req)
	if appErr != nil {
		t.Fatal(appErr)
	}
	repo.events[created.ID].CurrentParticipants = 5

	title := "Renamed"
	res, appErr := svc.Update(context.Background(), created.ID, &dto.UpdateEventRequest{Title: &title})
	if appErr != nil || res.Title != "Renamed" {
		t.Fatalf("title-only update = %v, %v", res, appErr)
	}

	limit := 4
	if _, appErr := svc.Update(context.Background(), created.ID, &dto.UpdateEventRequest{MaxParticipants: &limit}); appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("cap change below count: want CONFLICT, got %v", appErr)
	}
}

func TestDeleteMissingEvent(t *testing.T) {
	svc := NewEventService(newRecordingRepo(), "")
	if appErr := svc.Delete(context.Background(), uuid.New()); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("want NOT_FOUND, got %v", appErr)
	}
}

func TestGenerateQR(t *testing.T) {
	svc := NewEventService(newRecordingRepo(), "https://ndrop.example/")
	svc.newCode = func() (string, error) { return "AB12CD", nil }
	created, _ := svc.Create(context.Background(), validCreate())

	qr, appErr := svc.GenerateQR(context.Background(), created.ID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if qr.JoinURL != "https://ndrop.example/client/events/join?code=AB12CD" {
		t.Errorf("join url = %s", qr.JoinURL)
	}
	png, err := base64.StdEncoding.DecodeString(qr.QRCode)
	if err != nil {
		t.Fatalf("qr is not base64: %v", err)
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Errorf("qr is not a png")
	}
}
