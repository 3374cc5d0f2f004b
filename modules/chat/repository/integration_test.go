package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/database/dbtest"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/entity"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	os.Exit(dbtest.Main(m))
}

func createMeeting(t *testing.T, db database.Database) (meetingID, requester, receiver uuid.UUID) {
	t.Helper()
	eventID := dbtest.CreateEvent(t, db, 0)
	requester, receiver = uuid.New(), uuid.New()
	err := db.GetContext(context.Background(), &meetingID, `
		INSERT INTO event_meetings (event_id, requester_id, receiver_id, status)
		VALUES ($1, $2, $3, 'accepted')
		RETURNING id
	`, eventID, requester, receiver)
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	return meetingID, requester, receiver
}

func insertMessageAt(t *testing.T, db database.Database, meetingID, senderID uuid.UUID, at time.Time) {
	t.Helper()
	err := db.ExecContext(context.Background(), `
		INSERT INTO event_meeting_messages (meeting_id, sender_id, content, created_at) VALUES ($1, $2, 'hi', $3)
	`, meetingID, senderID, at)
	if err != nil {
		t.Fatalf("insert message: %v", err)
	}
}

func TestListMessagesPagesThroughSharedTimestamps(t *testing.T) {
	db := dbtest.Require(t)
	repo := NewChatRepository(db)
	meetingID, requester, _ := createMeeting(t, db)

	at := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		insertMessageAt(t, db, meetingID, requester, at.Add(-time.Minute))
	}
	for i := 0; i < 4; i++ {
		insertMessageAt(t, db, meetingID, requester, at)
	}

	seen := map[uuid.UUID]bool{}
	var (
		cursor *entity.Cursor
		last   *entity.Message
	)
	for pages := 0; pages < 10; pages++ {
		page, err := repo.ListMessages(context.Background(), meetingID, cursor, 2)
		if err != nil {
			t.Fatal(err)
		}
		for i := range page {
			if seen[page[i].ID] {
				t.Fatalf("message %s returned twice", page[i].ID)
			}
			if last != nil && page[i].CreatedAt.After(last.CreatedAt) {
				t.Fatalf("messages out of order: %s after %s", page[i].CreatedAt, last.CreatedAt)
			}
			seen[page[i].ID] = true
			last = &page[i]
		}
		if len(page) < 2 {
			break
		}
		cursor = &entity.Cursor{Before: last.CreatedAt, BeforeID: last.ID}
	}
	if len(seen) != 7 {
		t.Fatalf("paged through %d messages, want 7", len(seen))
	}
}

func TestListMessagesBeforeWithoutIDIsStrict(t *testing.T) {
	db := dbtest.Require(t)
	repo := NewChatRepository(db)
	meetingID, requester, _ := createMeeting(t, db)

	at := time.Now().UTC().Truncate(time.Second)
	insertMessageAt(t, db, meetingID, requester, at.Add(-time.Minute))
	insertMessageAt(t, db, meetingID, requester, at)

	page, err := repo.ListMessages(context.Background(), meetingID, &entity.Cursor{Before: at}, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || !page[0].CreatedAt.Equal(at.Add(-time.Minute)) {
		t.Fatalf("page = %+v", page)
	}
}

func TestReadReceiptsArePerUser(t *testing.T) {
	db := dbtest.Require(t)
	repo := NewChatRepository(db)
	ctx := context.Background()
	meetingID, requester, receiver := createMeeting(t, db)

	first, err := repo.MarkRead(ctx, meetingID, requester)
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.MarkRead(ctx, meetingID, requester)
	if err != nil {
		t.Fatal(err)
	}
	if second.Before(first) {
		t.Fatalf("last_read_at moved backwards: %s then %s", first, second)
	}

	receipts, err := repo.GetReceipts(ctx, meetingID)
	if err != nil {
		t.Fatal(err)
	}
	if len(receipts) != 1 || receipts[0].UserID != requester {
		t.Fatalf("receipts = %+v, want one for the requester only (receiver %s)", receipts, receiver)
	}
}
