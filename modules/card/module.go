package card

import (
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/card/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the card module and registers routes
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, uploader service.Uploader, notifier service.Notifier) *service.CardService {
	repo := repository.NewCardRepository(db)
	svc := service.NewCardService(repo, uploader, notifier)
	ctrl := controller.NewCardController(svc)

	router.NewCardRouter(ctrl).Register(g, mw)

	return svc
}
