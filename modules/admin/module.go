package admin

import (
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the admin module and registers routes
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, sessions service.SessionStore, tokenTTL time.Duration, console service.Console) *service.AuthService {
	repo := repository.NewAdminRepository(db)
	svc := service.NewAuthService(repo, sessions, tokenTTL)

	router.NewAdminRouter(
		controller.NewAuthController(svc),
		controller.NewConsoleController(console),
	).Register(g, mw)

	return svc
}
