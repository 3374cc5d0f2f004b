package router

import (
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/controller"

	"github.com/labstack/echo/v4"
)

type CardRouter struct {
	controller *controller.CardController
}

func NewCardRouter(controller *controller.CardController) *CardRouter {
	return &CardRouter{controller: controller}
}

func (r *CardRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	user := e.Group("/user", mw.AuthMiddleware())
	user.GET("/profile", r.controller.GetProfile)
	user.PUT("/profile", r.controller.UpsertProfile)
	user.POST("/profile/image", r.controller.UploadProfileImage)
	user.PUT("/card/visibility", r.controller.SetCardVisibility)
	user.GET("/collected-cards", r.controller.GetCollectedCards)
	user.POST("/collected-cards", r.controller.CollectCard)
	user.DELETE("/collected-cards/:id", r.controller.RemoveCollectedCard)

	cards := e.Group("/cards", mw.AuthMiddleware())
	cards.GET("/:id", r.controller.GetCard)
}
