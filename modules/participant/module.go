package participant

import (
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/core/queue"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, events service.EventReader, notifier service.Notifier) *service.ParticipantService {
	repo := repository.NewParticipantRepository(db)
	svc := service.NewParticipantService(repo, events, notifier)
	ctrl := controller.NewParticipantController(svc)

	router.NewParticipantRouter(ctrl).Register(g, mw)

	return svc
}

// RegisterTasks attaches the reconcile handler and its schedule.
func RegisterTasks(w *queue.Worker, svc *service.ParticipantService) error {
	w.HandleFunc(queue.TypeParticipantsReconcile, svc.HandleReconcileTask)
	return w.Every(queue.ReconcileSchedule, queue.TypeParticipantsReconcile, asynq.Queue(queue.QueueLow))
}
