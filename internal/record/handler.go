package record

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tamik3/oy-vey-pay/internal/exchange"
)

type Handler struct {
	Kind    Kind
	Service *Service
}

func NewHandler(k Kind, svc *Service) *Handler {
	return &Handler{Kind: k, Service: svc}
}

func (h *Handler) Add(c *fiber.Ctx) error {
	userID, err := h.guard(c)
	if err != nil {
		return err
	}

	var p Payload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	rec, err := h.Service.Add(userContext(c), h.Kind, userID, p)
	if err != nil {
		return h.httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      h.Kind.Label() + " added successfully",
		string(h.Kind): rec,
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := h.guard(c)
	if err != nil {
		return err
	}

	records, err := h.Service.List(userContext(c), h.Kind, userID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(records)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := h.guard(c)
	if err != nil {
		return err
	}

	recID, err := ParseID(c.Params(h.Kind.IDParam()), string(h.Kind)+" id")
	if err != nil {
		return h.httpError(err)
	}

	var p Payload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := h.Service.Update(userContext(c), h.Kind, userID, recID, p); err != nil {
		return h.httpError(err)
	}

	// The update contract returns no record body, unlike create.
	return c.JSON(fiber.Map{"message": h.Kind.Label() + " updated successfully"})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := h.guard(c)
	if err != nil {
		return err
	}

	recID, err := ParseID(c.Params(h.Kind.IDParam()), string(h.Kind)+" id")
	if err != nil {
		return h.httpError(err)
	}

	if err := h.Service.Delete(userContext(c), h.Kind, userID, recID); err != nil {
		return h.httpError(err)
	}
	return c.JSON(fiber.Map{"message": h.Kind.Label() + " deleted successfully"})
}

func (h *Handler) Total(c *fiber.Ctx) error {
	userID, err := h.guard(c)
	if err != nil {
		return err
	}

	total, err := h.Service.Total(userContext(c), h.Kind, userID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(fiber.Map{"totalAmount": total})
}

// guard enforces that the authenticated principal matches the path's userId.
// The comparison runs on the raw segment, before the id is even parsed, so
// existence and well-formedness leak nothing to foreign callers.
func (h *Handler) guard(c *fiber.Ctx) (uuid.UUID, error) {
	principal := PrincipalID(c)
	raw := c.Params("userId")
	if principal == "" || principal != raw {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
	id, err := ParseID(raw, "user id")
	if err != nil {
		return uuid.Nil, h.httpError(err)
	}
	return id, nil
}

func (h *Handler) httpError(err error) error {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return fiber.NewError(fiber.StatusBadRequest, vErr.Reason)
	case errors.Is(err, exchange.ErrConversionFailed):
		return fiber.NewError(fiber.StatusBadRequest, "Failed to exchange")
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, h.Kind.Label()+" not found")
	default:
		logrus.WithError(err).Errorf("%s operation failed", h.Kind)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}
}

// PrincipalID returns the authenticated user id placed in locals by the auth
// middleware, or "" when absent.
func PrincipalID(c *fiber.Ctx) string {
	if uid, ok := c.Locals("userID").(string); ok {
		return strings.TrimSpace(uid)
	}
	return ""
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
