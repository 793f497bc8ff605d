package record

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationError carries the first failing rule's message, which is what
// clients see verbatim in the 400 body.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(reason string) error { return &ValidationError{Reason: reason} }

// ParseID validates a path id segment. label is "user id", "expense id" etc.
func ParseID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("Invalid " + label)
	}
	return id, nil
}

// Validate checks the payload against the shared create/update schema and
// returns the first failing rule.
func (p *Payload) Validate(k Kind) error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("Title is required")
	}
	if len(p.Title) > 100 {
		return invalid("Title must be at most 100 characters long")
	}
	if len(p.Description) > 500 {
		return invalid("Description must be at most 500 characters long")
	}
	if !p.Amount.GreaterThan(decimal.Zero) {
		return invalid("Amount must be greater than zero")
	}
	if !contains(k.Tags(), p.Tag) {
		return invalid("Invalid tag")
	}
	if !contains(Currencies, p.Currency) {
		return invalid("Invalid currency")
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
