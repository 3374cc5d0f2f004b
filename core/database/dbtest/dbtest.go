// Package dbtest runs repository tests against a throwaway Postgres container.
//
// A repository package wires it from TestMain:
//
//	func TestMain(m *testing.M) { os.Exit(dbtest.Main(m)) }
//
// Without Docker, or with -skip-integration, the tests that call Require skip.
package dbtest

import (
	"context"
	"flag"
	"fmt"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

var (
	skipIntegration = flag.Bool("skip-integration", false, "Skip integration tests docker setup")
	testDB          *database.Database
)

// Main starts Postgres, applies the migrations and runs the package tests.
func Main(m *testing.M) int {
	flag.Parse()
	if *skipIntegration || testing.Short() {
		return m.Run()
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		fmt.Printf("docker unavailable, integration tests skipped: %v\n", err)
		return m.Run()
	}

	db, cleanup, err := setupTestDB(pool)
	if err != nil {
		fmt.Printf("could not setup test db: %v\n", err)
		return 1
	}
	defer func() {
		if err := cleanup(); err != nil {
			fmt.Printf("could not cleanup postgres container: %v\n", err)
		}
	}()

	if err := db.Migrate(context.Background(), database.MigrationsFS); err != nil {
		fmt.Printf("could not migrate: %v\n", err)
		return 1
	}
	testDB = db

	return m.Run()
}

func setupTestDB(pool *dockertest.Pool) (*database.Database, func() error, error) {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env:        []string{"POSTGRES_PASSWORD=secret", "POSTGRES_DB=ndrop"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create postgres resource: %w", err)
	}
	_ = resource.Expire(300)

	var db database.Database
	err = pool.Retry(func() error {
		dsn := fmt.Sprintf("postgres://postgres:secret@%s/ndrop?sslmode=disable", resource.GetHostPort("5432/tcp"))
		conn, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return err
		}
		db = database.New(conn)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &db, func() error {
		_ = db.Close()
		return pool.Purge(resource)
	}, nil
}

// Require returns the migrated database or skips t.
func Require(t *testing.T) database.Database {
	t.Helper()
	if testDB == nil {
		t.Skip("integration database not available")
	}
	return *testDB
}

// CreateEvent inserts an event starting in an hour. capacity 0 is unlimited.
func CreateEvent(t *testing.T, db database.Database, capacity int) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	start := time.Now().Add(time.Hour)
	err := db.GetContext(context.Background(), &id, `
		INSERT INTO events (title, start_date, end_date, max_participants, event_code)
		VALUES ('integration', $1, $2, $3, $4)
		RETURNING id
	`, start, start.Add(time.Hour), capacity, uuid.NewString()[:6])
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return id
}

// AddParticipant writes a participant row with the given status directly.
func AddParticipant(t *testing.T, db database.Database, eventID, userID uuid.UUID, status string) {
	t.Helper()
	err := db.ExecContext(context.Background(), `
		INSERT INTO event_participants (event_id, user_id, status) VALUES ($1, $2, $3)
	`, eventID, userID, status)
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}
}

// CreateCard inserts a profile and its card projection for userID.
func CreateCard(t *testing.T, db database.Database, userID uuid.UUID, fullName string, public bool) {
	t.Helper()
	ctx := context.Background()
	if err := db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, full_name, company, is_public) VALUES ($1, $2, 'Acme', $3)
	`, userID, fullName, public); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := db.ExecContext(ctx, `
		INSERT INTO business_cards (user_id, full_name, company, job_title, email, phone, introduction,
		                            mbti, keywords, interests, hobbies, is_public)
		VALUES ($1, $2, 'Acme', '', '', '', '', '', '{}', '{}', '{}', $3)
	`, userID, fullName, public); err != nil {
		t.Fatalf("create card: %v", err)
	}
}
