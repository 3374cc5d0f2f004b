package router

import (
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/controller"

	"github.com/labstack/echo/v4"
)

type ChatRouter struct {
	controller *controller.ChatController
}

func NewChatRouter(controller *controller.ChatController) *ChatRouter {
	return &ChatRouter{controller: controller}
}

func (r *ChatRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	messages := e.Group("/events/:id/meetings/:meetingId/messages", mw.AuthMiddleware())
	messages.GET("", r.controller.GetMessages)
	messages.POST("", r.controller.SendMessage)

	meetings := e.Group("/meetings", mw.AuthMiddleware())
	meetings.GET("/:id/read-receipt", r.controller.GetReadReceipt)
	meetings.POST("/:id/read-receipt", r.controller.MarkRead)
	meetings.GET("/:id/stream", r.controller.Stream)
}
