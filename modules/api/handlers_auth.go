package api

import (
	"log"
	"strings"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/planner"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authPort    auth.AuthPort
	plannerPort planner.PlannerPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, plannerPort planner.PlannerPort) *Handlers {
	return &Handlers{
		authPort:    authPort,
		plannerPort: plannerPort,
	}
}

// Register handles POST /api/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	if fields := validateStruct(&req); fields != nil {
		return validationFailed(c, fields)
	}

	resp, err := h.authPort.Register(c.UserContext(), &auth.RegisterRequest{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return h.handleAuthError(c, err, "Failed to register user")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "User registered successfully",
		Status:  fiber.StatusOK,
		Data:    resp,
	})
}

// Login handles POST /api/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	if fields := validateStruct(&req); fields != nil {
		return validationFailed(c, fields)
	}

	resp, err := h.authPort.Login(c.UserContext(), &auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.handleAuthError(c, err, "Failed to login user")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "User logged in successfully",
		Status:  fiber.StatusOK,
		Token:   resp.Token,
	})
}

// Logout handles GET /api/logout. The presented token is revoked for its
// remaining lifetime.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.authPort.Logout(c.UserContext(), token); err != nil {
		return h.handleAuthError(c, err, "Failed to logout user")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "User logged out successfully",
		Status:  fiber.StatusOK,
	})
}

// Refresh handles GET /api/refresh. The presented token is revoked and a
// fresh one returned as new_token.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.authPort.Refresh(c.UserContext(), token)
	if err != nil {
		return h.handleAuthError(c, err, "Failed to refresh token")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message:  "Token refreshed successfully",
		Status:   fiber.StatusOK,
		NewToken: resp.Token,
	})
}

// Profile handles GET /api/profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	user, err := h.authPort.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleAuthError(c, err, "Failed to get user")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "User profile retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    user,
	})
}

// currentClaims extracts the authenticated claims placed by the middleware.
func currentClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}

// badRequestBody reports an unparseable JSON body.
func badRequestBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Message: "Invalid request body",
		Status:  fiber.StatusBadRequest,
	})
}

// validationFailed reports field-level validation failures.
func validationFailed(c *fiber.Ctx, fields map[string][]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{
		Message: "Validation failed",
		Status:  fiber.StatusUnprocessableEntity,
		Errors:  fields,
	})
}

// unauthenticated reports a missing or unusable identity.
func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
		Message: "Unauthenticated.",
		Status:  fiber.StatusUnauthorized,
	})
}

// handleAuthError maps auth service errors onto the response envelope.
// Typed errors do not survive the service-container hop, so classification
// matches the services' stable error messages.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error, failMessage string) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
			Message: "Invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	case strings.Contains(errStr, "already exists"):
		return validationFailed(c, map[string][]string{
			"email": {"The email has already been taken."},
		})
	case strings.Contains(errStr, "invalid email format"):
		return validationFailed(c, map[string][]string{
			"email": {"The email must be a valid email address."},
		})
	case strings.Contains(errStr, "password must be at least"):
		return validationFailed(c, map[string][]string{
			"password": {"The password must be at least 5 characters."},
		})
	case strings.Contains(errStr, "password confirmation"):
		return validationFailed(c, map[string][]string{
			"password_confirmation": {"The password confirmation does not match."},
		})
	case strings.Contains(errStr, "token expired"),
		strings.Contains(errStr, "token revoked"),
		strings.Contains(errStr, "token has expired"),
		strings.Contains(errStr, "token has been revoked"),
		strings.Contains(errStr, "invalid token"),
		strings.Contains(errStr, "token validation failed"):
		return unauthenticated(c)
	case strings.Contains(errStr, "user not found"):
		return c.Status(fiber.StatusNotFound).JSON(Envelope{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
			Message: failMessage,
			Status:  fiber.StatusInternalServerError,
			Error:   errStr,
		})
	}
}
