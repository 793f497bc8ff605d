package record

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotFound     = errors.New("record not found")
)

// Store is what the workflows need from persistence. *Repository is the
// production implementation.
type Store interface {
	Owner(ctx context.Context, userID uuid.UUID) (*Owner, error)
	Insert(ctx context.Context, k Kind, ownerID uuid.UUID, rec *Record) error
	Get(ctx context.Context, k Kind, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, k Kind, rec *Record) error
	Delete(ctx context.Context, k Kind, ownerID, id uuid.UUID) error
	ListByIDs(ctx context.Context, k Kind, ids []uuid.UUID) ([]Record, error)
}

// Converter converts amount from one currency to another through the rate
// provider. Callers skip it entirely when no conversion is needed.
type Converter interface {
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error)
}

type Service struct {
	store Store
	fx    Converter
}

func NewService(store Store, fx Converter) *Service {
	return &Service{store: store, fx: fx}
}

// Add validates the payload, converts non-base amounts, and persists the new
// record linked to its owner. Conversion failure aborts before anything is
// written.
func (s *Service) Add(ctx context.Context, k Kind, ownerID uuid.UUID, p Payload) (*Record, error) {
	if err := p.Validate(k); err != nil {
		return nil, err
	}

	owner, err := s.store.Owner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Title:       p.Title,
		Description: p.Description,
		Amount:      p.Amount,
		Tag:         p.Tag,
		Currency:    p.Currency,
	}

	if p.Currency != BaseCurrency {
		converted, err := s.fx.Convert(ctx, p.Currency, BaseCurrency, p.Amount)
		if err != nil {
			return nil, err
		}
		rec.ExchangedAmount = decimal.NewNullDecimal(converted)
	}

	if err := s.store.Insert(ctx, k, owner.ID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, k Kind, ownerID uuid.UUID) ([]Record, error) {
	owner, err := s.store.Owner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.store.ListByIDs(ctx, k, owner.Refs(k))
}

// Update rewrites an owned record. Conversion is recomputed only when the
// incoming amount or currency differs from the stored values; otherwise the
// previously stored exchanged amount is retained.
func (s *Service) Update(ctx context.Context, k Kind, ownerID, recID uuid.UUID, p Payload) error {
	if err := p.Validate(k); err != nil {
		return err
	}

	owner, err := s.store.Owner(ctx, ownerID)
	if err != nil {
		return err
	}
	// Ownership comes from the user's reference list, not from a bare record
	// lookup; a record held by another user is invisible here.
	if !owner.Owns(k, recID) {
		return ErrNotFound
	}

	cur, err := s.store.Get(ctx, k, recID)
	if err != nil {
		return err
	}

	next := *cur
	next.Title = p.Title
	next.Description = p.Description
	next.Amount = p.Amount
	next.Tag = p.Tag
	next.Currency = p.Currency

	if !cur.Amount.Equal(p.Amount) || cur.Currency != p.Currency {
		next.ExchangedAmount = decimal.NullDecimal{}
		if p.Currency != BaseCurrency {
			converted, err := s.fx.Convert(ctx, p.Currency, BaseCurrency, p.Amount)
			if err != nil {
				return err
			}
			next.ExchangedAmount = decimal.NewNullDecimal(converted)
		}
	}

	return s.store.Update(ctx, k, &next)
}

func (s *Service) Delete(ctx context.Context, k Kind, ownerID, recID uuid.UUID) error {
	owner, err := s.store.Owner(ctx, ownerID)
	if err != nil {
		return err
	}
	if !owner.Owns(k, recID) {
		return ErrNotFound
	}
	return s.store.Delete(ctx, k, owner.ID, recID)
}

// Total sums the owner's records, preferring the stored converted amount
// over the raw amount, and formats the result to two decimal places. No
// re-normalization happens at read time.
func (s *Service) Total(ctx context.Context, k Kind, ownerID uuid.UUID) (string, error) {
	records, err := s.List(ctx, k, ownerID)
	if err != nil {
		return "", err
	}

	total := decimal.Zero
	for i := range records {
		total = total.Add(records[i].DisplayAmount())
	}
	return total.StringFixed(2), nil
}
