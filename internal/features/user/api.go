package user

import (
	"go-fileshare/internal/config"
	"go-fileshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) *UserApi {
	return &UserApi{
		controller: controller,
		config:     config,
	}
}

func (h *UserApi) Setup(app *fiber.App) {
	app.Get("/api/users", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.ListUsers)
}
