package user

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Accounts is what the auth handlers need from persistence. *Store is the
// production implementation.
type Accounts interface {
	Insert(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Handler struct {
	Store     Accounts
	JWTSecret []byte
}

func NewHandler(store Accounts, jwtSecret []byte) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret}
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var body SignUpPayload
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := body.Validate(); err != nil {
		return badRequest(err)
	}

	ctx := userContext(c)

	taken, err := h.Store.UsernameExists(ctx, body.Username)
	if err != nil {
		return internalError(err)
	}
	if taken {
		return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
	}

	taken, err = h.Store.EmailExists(ctx, body.Email)
	if err != nil {
		return internalError(err)
	}
	if taken {
		return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(err)
	}

	u := &User{
		FullName:     body.FullName,
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: string(hashed),
	}
	if err := h.Store.Insert(ctx, u); err != nil {
		return internalError(err)
	}

	if err := h.setTokenCookie(c, u); err != nil {
		return internalError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
}

func (h *Handler) SignIn(c *fiber.Ctx) error {
	var body SignInPayload
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := body.Validate(); err != nil {
		return badRequest(err)
	}

	u, err := h.Store.GetByUsername(userContext(c), body.Username)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid username or password")
	}
	if err != nil {
		return internalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid username or password")
	}

	if err := h.setTokenCookie(c, u); err != nil {
		return internalError(err)
	}
	return c.JSON(fiber.Map{"message": "User signed in successfully"})
}

func (h *Handler) LogOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"message": "User signed out successfully"})
}

// Me returns the principal's profile straight from the validated token
// claims; no store round-trip.
func (h *Handler) Me(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(jwt.MapClaims)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	return c.JSON(fiber.Map{
		"id":           claims["id"],
		"fullName":     claims["fullName"],
		"username":     claims["username"],
		"email":        claims["email"],
		"createdAt":    claims["createdAt"],
		"tokenExpired": claims["exp"],
	})
}

func (h *Handler) setTokenCookie(c *fiber.Ctx, u *User) error {
	expires := time.Now().Add(tokenTTL)

	claims := jwt.MapClaims{
		"id":        u.ID.String(),
		"fullName":  u.FullName,
		"username":  u.Username,
		"email":     u.Email,
		"createdAt": u.CreatedAt.Format(time.RFC3339),
		"exp":       expires.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    signed,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

func badRequest(err error) error {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return fiber.NewError(fiber.StatusBadRequest, vErr.Reason)
	}
	return fiber.NewError(fiber.StatusBadRequest, "invalid body")
}

func internalError(err error) error {
	logrus.WithError(err).Error("auth operation failed")
	return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
