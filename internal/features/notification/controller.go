package notification

import (
	"go-fileshare/internal/common/errs"
	"go-fileshare/internal/features/file"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	fileService file.FileService
	hub         *Hub
}

func NewNotificationController(fileService file.FileService, hub *Hub) *NotificationController {
	return &NotificationController{
		fileService: fileService,
		hub:         hub,
	}
}

type MarkViewedRequest struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// List returns the unread share notifications for the requester: files
// shared with them that they have not marked viewed yet.
func (c *NotificationController) List(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	files, err := c.fileService.ListNotifications(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"count": len(files),
		"files": files,
	})
}

// MarkViewed acknowledges a share notification. Calling it again for the
// same file is a no-op.
func (c *NotificationController) MarkViewed(ctx *fiber.Ctx) error {
	var req MarkViewedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// Clients may name a userId explicitly; fall back to the authenticated
	// identity when it is omitted.
	userID := req.UserID
	if userID == "" {
		userID, _ = ctx.Locals("user_id").(string)
	}

	if err := c.fileService.MarkViewed(ctx.UserContext(), req.FileID, userID); err != nil {
		return ctx.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true})
}

// HandleWebSocket keeps the connection registered for live share events
// until the client goes away.
func (c *NotificationController) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	if userID == "" {
		conn.Close()
		return
	}

	c.hub.Register(userID, conn)
	defer func() {
		c.hub.Unregister(userID, conn)
		conn.Close()
	}()

	// Reads are only used to detect disconnect; clients don't send anything.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
