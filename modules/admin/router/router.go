package router

import (
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/controller"

	"github.com/labstack/echo/v4"
)

type AdminRouter struct {
	auth    *controller.AuthController
	console *controller.ConsoleController
}

func NewAdminRouter(auth *controller.AuthController, console *controller.ConsoleController) *AdminRouter {
	return &AdminRouter{auth: auth, console: console}
}

func (r *AdminRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	e.POST("/admin/login", r.auth.Login)

	admin := e.Group("/admin", mw.AuthMiddleware(), mw.AdminMiddleware())
	admin.POST("/logout", r.auth.Logout)

	admin.GET("/get-events", r.console.GetEvents)
	admin.POST("/create-event", r.console.CreateEvent)
	admin.PUT("/update-event/:id", r.console.UpdateEvent)
	admin.DELETE("/delete-event/:id", r.console.DeleteEvent)
	admin.POST("/generate-qr", r.console.GenerateQR)

	admin.GET("/get-participants", r.console.GetParticipants)
	admin.POST("/remove-participant", r.console.RemoveParticipant)

	admin.POST("/send-notice", r.console.SendNotice)
	admin.POST("/upload-image", r.console.UploadImage)
}
