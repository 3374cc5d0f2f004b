package meeting

import (
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, participants service.ParticipantChecker, notifier service.Notifier) *service.MeetingService {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, participants, notifier)
	ctrl := controller.NewMeetingController(svc)

	router.NewMeetingRouter(ctrl).Register(g, mw)

	return svc
}
