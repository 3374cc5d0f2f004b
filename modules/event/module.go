package event

import (
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init wires the event module. origin is the public base URL used in join links.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, origin string) *service.EventService {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, origin)
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Register(g, mw)

	return svc
}
