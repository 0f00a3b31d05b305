package handlers

import (
	"log"

	"giftmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes. Sync requires a signed-in user;
// the full listing is admin-only.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/sync", authRequired, h.HandleSyncProfile)
	userRoutes.Get("/me", authRequired, h.HandleGetMe)
	userRoutes.Get("/", authRequired, adminRequired, h.HandleGetUsers)
}

// HandleSyncProfile upserts the local user record from the verified token
// claims. Safe to call on every sign-in; the payload is ignored entirely so
// a client cannot sync anyone else's identity.
func (h *UserHandler) HandleSyncProfile(c *fiber.Ctx) error {
	externalID, _ := c.Locals("user_id").(string)
	email, _ := c.Locals("email").(string)
	name, _ := c.Locals("name").(string)

	userID, err := h.service.SyncProfile(externalID, email, name)
	if err != nil {
		log.Printf("Error syncing profile for %s: %v", externalID, err)
		return errorResponse(c, err, "Could not sync user profile")
	}
	return c.JSON(fiber.Map{
		"message": "Profile synced",
		"user_id": userID,
	})
}

// HandleGetMe returns the signed-in user's local record.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	externalID, _ := c.Locals("user_id").(string)

	user, err := h.service.GetByExternalID(externalID)
	if err != nil {
		log.Printf("Error getting user %s: %v", externalID, err)
		return errorResponse(c, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

// HandleGetUsers retrieves all users (admin).
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return errorResponse(c, err, "Could not retrieve users")
	}
	return c.JSON(users)
}
