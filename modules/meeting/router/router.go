package router

import (
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

// MeetingRouter handles meeting routes
type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

func (r *MeetingRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	meetingRoutes := e.Group("/events/:id/meetings", mw.AuthMiddleware())

	meetingRoutes.GET("", r.MeetingController.GetMeetings)
	meetingRoutes.POST("", r.MeetingController.CreateMeeting)
	meetingRoutes.GET("/:meetingId", r.MeetingController.GetMeeting)
	meetingRoutes.PATCH("/:meetingId", r.MeetingController.UpdateMeeting)
}
