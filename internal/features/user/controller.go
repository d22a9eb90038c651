package user

import (
	"go-fileshare/internal/common/errs"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	UserService UserService
}

func NewUserController(userService UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// ListUsers returns all registered users, optionally excluding one id
// (typically the requester, so share pickers don't offer self).
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	excludeID := c.Query("exclude")

	users, err := ctrl.UserService.ListUsers(c.UserContext(), excludeID)
	if err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
			"error": "Error retrieving users",
		})
	}

	return c.JSON(users)
}
