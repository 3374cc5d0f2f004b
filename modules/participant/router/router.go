package router

import (
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant/controller"

	"github.com/labstack/echo/v4"
)

type ParticipantRouter struct {
	controller *controller.ParticipantController
}

func NewParticipantRouter(controller *controller.ParticipantController) *ParticipantRouter {
	return &ParticipantRouter{controller: controller}
}

func (r *ParticipantRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	user := e.Group("/user", mw.AuthMiddleware())
	user.POST("/join-event", r.controller.JoinEvent)
	user.POST("/leave-event", r.controller.LeaveEvent)
	user.GET("/events", r.controller.GetMyEvents)

	events := e.Group("/events", mw.AuthMiddleware())
	events.GET("/:id/participants", r.controller.GetParticipants)
}
