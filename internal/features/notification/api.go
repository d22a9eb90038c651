package notification

import (
	"go-fileshare/internal/common/api"
	"go-fileshare/internal/config"
	"go-fileshare/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	config     *config.Config
}

func NewNotificationApi(controller *NotificationController, config *config.Config) api.Route {
	return &NotificationApi{
		controller: controller,
		config:     config,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Get("/api/notifications", auth, h.controller.List)
	app.Post("/api/mark-viewed", auth, h.controller.MarkViewed)
	app.Get("/api/ws", auth, websocket.New(h.controller.HandleWebSocket))
}
