package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/core/params"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/service"
	eventDto "github.com/neimd2025/web-ndrop-sub000/modules/event/dto"
	participantDto "github.com/neimd2025/web-ndrop-sub000/modules/participant/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type stubAuth struct{}

func (stubAuth) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	return &dto.LoginResponse{AccessToken: "tok", TokenType: "Bearer"}, nil
}

func (stubAuth) Logout(context.Context, string, time.Time) *errors.AppError { return nil }

func (stubAuth) SeedAdmin(context.Context, string, string) error { return nil }

type stubEvents struct{ service.EventManager }

func (stubEvents) List(context.Context, params.QueryParams) (*eventDto.PaginatedEventResponse, *errors.AppError) {
	return &eventDto.PaginatedEventResponse{Items: []eventDto.EventResponse{}}, nil
}

type recordingParticipants struct {
	service.ParticipantManager
	listedAll bool
}

func (r *recordingParticipants) GetAllParticipants(context.Context, uuid.UUID) ([]participantDto.ParticipantResponse, *errors.AppError) {
	r.listedAll = true
	return []participantDto.ParticipantResponse{}, nil
}

func newTestApp(participants *recordingParticipants) *echo.Echo {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "testsecret"}})
	e := echo.New()
	NewAdminRouter(
		controller.NewAuthController(stubAuth{}),
		controller.NewConsoleController(service.Console{Events: stubEvents{}, Participants: participants}),
	).Register(e.Group("/api"), middleware.NewMiddleware(nil))
	return e
}

func token(t *testing.T, roleID int) string {
	t.Helper()
	tok, _, err := utils.GenerateToken(uuid.New(), roleID, constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func serve(e *echo.Echo, method, path, tok, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginNeedsNoToken(t *testing.T) {
	e := newTestApp(&recordingParticipants{})
	rec := serve(e, http.MethodPost, "/api/admin/login", "", `{"username":"root","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	e := newTestApp(&recordingParticipants{})
	tests := []struct {
		name string
		tok  string
		want int
	}{
		{name: "no token", tok: "", want: http.StatusUnauthorized},
		{name: "user token", tok: token(t, constants.RoleUser), want: http.StatusForbidden},
		{name: "admin token", tok: token(t, constants.RoleAdmin), want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := serve(e, http.MethodGet, "/api/admin/get-events", tt.tok, ""); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGetParticipantsIncludesRemoved(t *testing.T) {
	participants := &recordingParticipants{}
	e := newTestApp(participants)

	rec := serve(e, http.MethodGet, "/api/admin/get-participants?event_id="+uuid.NewString(), token(t, constants.RoleAdmin), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if !participants.listedAll {
		t.Error("admin listing should include removed participants")
	}

	rec = serve(e, http.MethodGet, "/api/admin/get-participants", token(t, constants.RoleAdmin), "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing event_id status = %d, want 400", rec.Code)
	}
}
