package identity

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
)

// Handler exposes identity endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Register handles self sign-up. Routes only mount it when registration is allowed.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Register(c.UserContext(), Credentials{Username: req.Username, Password: req.Password})
	if errors.Is(err, ErrUserExists) {
		return fiber.NewError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(userResponse{UserID: user.ID, Username: user.Username})
}
