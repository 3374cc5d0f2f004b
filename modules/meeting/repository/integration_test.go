package repository

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/database/dbtest"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/entity"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	os.Exit(dbtest.Main(m))
}

func newMeeting(t *testing.T, repo *MeetingRepository, eventID, requester, receiver uuid.UUID) (*entity.Meeting, error) {
	t.Helper()
	m := &entity.Meeting{EventID: eventID, RequesterID: requester, ReceiverID: receiver, Message: "coffee?"}
	return m, repo.Create(context.Background(), m)
}

func TestUpdateStatusAdmitsOneConcurrentResponder(t *testing.T) {
	db := dbtest.Require(t)
	repo := NewMeetingRepository(db)
	eventID := dbtest.CreateEvent(t, db, 0)

	meeting, err := newMeeting(t, repo, eventID, uuid.New(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []entity.Status
	)
	for i := 0; i < 8; i++ {
		to := entity.StatusAccepted
		if i%2 == 1 {
			to = entity.StatusDeclined
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			updated, err := repo.UpdateStatus(context.Background(), meeting.ID, entity.StatusPending, to)
			if err != nil {
				t.Error(err)
				return
			}
			if updated != nil {
				mu.Lock()
				winners = append(winners, updated.Status)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(winners) != 1 {
		t.Fatalf("want exactly one transition out of pending, got %v", winners)
	}
	stored, err := repo.GetByID(context.Background(), meeting.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != winners[0] || stored.RespondedAt == nil {
		t.Fatalf("stored meeting = %+v, winner %s", stored, winners[0])
	}
}

func TestOpenRequestIsUniquePerDirection(t *testing.T) {
	db := dbtest.Require(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()
	eventID := dbtest.CreateEvent(t, db, 0)
	alice, bob := uuid.New(), uuid.New()

	first, err := newMeeting(t, repo, eventID, alice, bob)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newMeeting(t, repo, eventID, alice, bob); !database.IsUniqueViolation(err, OpenRequestConstraint) {
		t.Fatalf("duplicate pending request: want %s violation, got %v", OpenRequestConstraint, err)
	}
	if _, err := newMeeting(t, repo, eventID, bob, alice); err != nil {
		t.Fatalf("reverse direction: %v", err)
	}

	if updated, err := repo.UpdateStatus(ctx, first.ID, entity.StatusPending, entity.StatusDeclined); err != nil || updated == nil {
		t.Fatalf("decline = %v, %v", updated, err)
	}
	if _, err := newMeeting(t, repo, eventID, alice, bob); err != nil {
		t.Fatalf("new request after decline: %v", err)
	}

	pending, err := repo.ListForUser(ctx, eventID, alice, entity.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("alice pending meetings = %d, want 2", len(pending))
	}
	all, err := repo.ListForUser(ctx, eventID, alice, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("alice meetings = %d, want 3", len(all))
	}
}
