package reports

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/tamik3/oy-vey-pay/internal/record"
)

type Handler struct {
	Records *record.Service
}

func NewHandler(records *record.Service) *Handler {
	return &Handler{Records: records}
}

// Statement renders a PDF of the user's incomes and expenses created within
// the requested range (default: the last 30 days). Totals use the same
// converted-else-raw preference as the totals endpoints.
func (h *Handler) Statement(c *fiber.Ctx) error {
	principal := record.PrincipalID(c)
	raw := c.Params("userId")
	if principal == "" || principal != raw {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
	userID, err := record.ParseID(raw, "user id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	from, to, err := parseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	incomes, err := h.Records.List(ctx, record.KindIncome, userID)
	if err != nil {
		return h.httpError(err)
	}
	expenses, err := h.Records.List(ctx, record.KindExpense, userID)
	if err != nil {
		return h.httpError(err)
	}

	buf, err := renderStatement(statementData{
		From:     from,
		To:       to,
		Incomes:  inRange(incomes, from, to),
		Expenses: inRange(expenses, from, to),
	})
	if err != nil {
		return h.httpError(err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.pdf"`)
	return c.Send(buf)
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" || toStr == "" {
		to := time.Now()
		return to.AddDate(0, 0, -29), to, nil
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
	}
	// Make the range inclusive of the whole "to" day.
	return from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

func inRange(records []record.Record, from, to time.Time) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if r.CreatedAt.Before(from) || r.CreatedAt.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (h *Handler) httpError(err error) error {
	if errors.Is(err, record.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	logrus.WithError(err).Error("statement failed")
	return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
}
