package file

import (
	"os"
	"path/filepath"
	"time"

	"go-fileshare/internal/common/errs"
	"go-fileshare/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FileController struct {
	UploadDir   string
	FileService FileService
}

func NewFileController(fileService FileService, cfg *config.Config) *FileController {
	if _, err := os.Stat(cfg.FSPath); os.IsNotExist(err) {
		os.MkdirAll(cfg.FSPath, 0755)
	}
	return &FileController{
		UploadDir:   cfg.FSPath,
		FileService: fileService,
	}
}

type ShareRequest struct {
	FileID  string   `json:"fileId"`
	UserIDs []string `json:"userIds"`
}

type ShareLinkRequest struct {
	FileID string `json:"fileId"`
}

// UploadFile stores the blob under an opaque uuid name and creates the record.
func (ctrl *FileController) UploadFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if err := ctrl.FileService.ValidateUpload(fileHeader.Size); err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	originalName := filepath.Base(fileHeader.Filename)
	diskName := uuid.New().String() + filepath.Ext(originalName)
	dstPath := filepath.Join(ctrl.UploadDir, diskName)

	if err := c.SaveFile(fileHeader, dstPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error saving file to disk",
		})
	}

	record := &File{
		Filename:     diskName,
		OriginalName: originalName,
		Size:         fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		UploadedBy:   userID,
		SharedWith:   []string{},
		ViewedBy:     []string{},
		CreatedAt:    time.Now(),
	}

	if err := ctrl.FileService.SaveFile(c.UserContext(), record); err != nil {
		// The blob is already on disk; the sweeper reclaims it.
		os.Remove(dstPath)
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": "Error saving file metadata",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetFiles lists every file the requester owns or was shared.
func (ctrl *FileController) GetFiles(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	files, err := ctrl.FileService.GetAccessibleFiles(c.UserContext(), userID)
	if err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": "Error retrieving files",
		})
	}

	return c.JSON(files)
}

// GetFilesByUser lists the files a given user owns or was shared.
func (ctrl *FileController) GetFilesByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	files, err := ctrl.FileService.GetAccessibleFiles(c.UserContext(), userID)
	if err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": "Error retrieving files",
		})
	}

	return c.JSON(files)
}

func (ctrl *FileController) ShareFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req ShareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updated, err := ctrl.FileService.Share(c.UserContext(), req.FileID, userID, req.UserIDs)
	if err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(updated)
}

func (ctrl *FileController) GenerateShareLink(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req ShareLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	link, err := ctrl.FileService.GenerateShareLink(c.UserContext(), req.FileID, userID)
	if err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(link)
}

func (ctrl *FileController) GetFileByLink(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	token := c.Params("token")

	f, err := ctrl.FileService.ResolveByToken(c.UserContext(), token, userID)
	if err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(f)
}

func (ctrl *FileController) DownloadFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	fileID := c.Params("fileId")

	f, err := ctrl.FileService.GetForDownload(c.UserContext(), fileID, userID)
	if err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	blobPath := filepath.Join(ctrl.UploadDir, f.Filename)
	if _, err := os.Stat(blobPath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found on server",
		})
	}

	return c.Download(blobPath, f.OriginalName)
}
