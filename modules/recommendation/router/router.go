package router

import (
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/controller"

	"github.com/labstack/echo/v4"
)

type RecommendationRouter struct {
	controller *controller.RecommendationController
}

func NewRecommendationRouter(controller *controller.RecommendationController) *RecommendationRouter {
	return &RecommendationRouter{controller: controller}
}

func (r *RecommendationRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	matching := e.Group("/events/:id/matching", mw.AuthMiddleware())
	matching.GET("/recommendations", r.controller.GetBaseline)
	matching.POST("/recommendations", r.controller.GetRecommendations)

	ai := e.Group("/ai", mw.AuthMiddleware())
	ai.POST("/recommendation", r.controller.Proxy)
}
