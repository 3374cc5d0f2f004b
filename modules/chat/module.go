package chat

import (
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/core/realtime"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/controller"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/repository"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/router"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, meetings service.MeetingFinder, publisher service.Publisher, streamer *realtime.Streamer) *service.ChatService {
	repo := repository.NewChatRepository(db)
	svc := service.NewChatService(repo, meetings, publisher)
	ctrl := controller.NewChatController(svc, streamer)

	router.NewChatRouter(ctrl).Register(g, mw)

	return svc
}
