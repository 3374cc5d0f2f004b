package notification

import (
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/core/queue"
	"github.com/neimd2025/web-ndrop-sub000/core/realtime"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init wires the notification module and returns its service for the other modules.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, enqueuer queue.Enqueuer, publisher service.Publisher, streamer *realtime.Streamer) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, enqueuer, publisher)
	ctrl := controller.NewNotificationController(svc, streamer)

	router.NewNotificationRouter(ctrl).Register(g, mw)

	return svc
}

// RegisterTasks attaches the notification worker handlers.
func RegisterTasks(w *queue.Worker, svc *service.NotificationService) {
	w.HandleFunc(queue.TypeNotificationDeliver, svc.HandleDeliverTask)
}
