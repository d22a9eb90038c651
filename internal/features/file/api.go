package file

import (
	"go-fileshare/internal/config"
	"go-fileshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FileApi struct {
	controller *FileController
	config     *config.Config
}

func NewFileApi(controller *FileController, config *config.Config) *FileApi {
	return &FileApi{
		controller: controller,
		config:     config,
	}
}

func (h *FileApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/upload", auth, h.controller.UploadFile)
	app.Get("/api/files", auth, h.controller.GetFiles)
	app.Get("/api/files/:userId", auth, h.controller.GetFilesByUser)
	app.Post("/api/share", auth, h.controller.ShareFile)
	app.Post("/api/share-link", auth, h.controller.GenerateShareLink)
	app.Get("/api/file-by-link/:token", auth, h.controller.GetFileByLink)
	app.Get("/api/download/:fileId", auth, h.controller.DownloadFile)
}
