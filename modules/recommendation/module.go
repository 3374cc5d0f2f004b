package recommendation

import (
	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/client"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the recommendation module and registers routes
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, participants service.ParticipantChecker, cache service.Cache, aiCfg config.AIConfig) *service.RecommendationService {
	var ai service.Recommender
	if c := client.NewAIClient(aiCfg); c != nil {
		ai = c
	}

	repo := repository.NewRecommendationRepository(db)
	svc := service.NewRecommendationService(repo, participants, cache, ai)
	ctrl := controller.NewRecommendationController(svc)

	router.NewRecommendationRouter(ctrl).Register(g, mw)

	return svc
}
