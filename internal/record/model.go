package record

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseCurrency is the canonical currency all totals are expressed in.
// Amounts entered in any other currency are converted at write time and the
// result is stored next to the raw amount.
const BaseCurrency = "ILS"

var Currencies = []string{"ILS", "USD", "EUR"}

// Kind distinguishes the two structurally identical record families. It
// selects the table, the owner reference column and the wire naming.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Table() string {
	if k == KindIncome {
		return "incomes"
	}
	return "expenses"
}

func (k Kind) RefColumn() string {
	if k == KindIncome {
		return "income_ids"
	}
	return "expense_ids"
}

// Label is the capitalized name used in client-facing messages.
func (k Kind) Label() string {
	if k == KindIncome {
		return "Income"
	}
	return "Expense"
}

func (k Kind) IDParam() string {
	if k == KindIncome {
		return "incomeId"
	}
	return "expenseId"
}

func (k Kind) Tags() []string {
	if k == KindIncome {
		return incomeTags
	}
	return expenseTags
}

var (
	expenseTags = []string{"food", "rent", "transport", "clothing", "entertainment", "health", "education", "other"}
	incomeTags  = []string{"salary", "bonus", "gift", "other"}
)

// Record is a single income or expense. Amount is in Currency units exactly
// as entered; ExchangedAmount is the base-currency equivalent and is only
// set when Currency differed from BaseCurrency at last write.
type Record struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Amount          decimal.Decimal     `json:"amount"`
	Tag             string              `json:"tag"`
	Currency        string              `json:"currency"`
	ExchangedAmount decimal.NullDecimal `json:"exchangedAmount"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// DisplayAmount is the value a record contributes to totals: the converted
// amount when a conversion was performed, the raw amount otherwise.
func (r *Record) DisplayAmount() decimal.Decimal {
	if r.ExchangedAmount.Valid && !r.ExchangedAmount.Decimal.IsZero() {
		return r.ExchangedAmount.Decimal
	}
	return r.Amount
}

// Payload is the client body for both create and update.
type Payload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Tag         string          `json:"tag"`
	Currency    string          `json:"currency"`
}

// Owner is the slice of a user the record workflows need: identity plus the
// ordered reference lists that establish ownership.
type Owner struct {
	ID         uuid.UUID
	ExpenseIDs []uuid.UUID
	IncomeIDs  []uuid.UUID
}

// Owns reports whether id appears in the owner's reference list for k.
func (o *Owner) Owns(k Kind, id uuid.UUID) bool {
	refs := o.ExpenseIDs
	if k == KindIncome {
		refs = o.IncomeIDs
	}
	for _, ref := range refs {
		if ref == id {
			return true
		}
	}
	return false
}

func (o *Owner) Refs(k Kind) []uuid.UUID {
	if k == KindIncome {
		return o.IncomeIDs
	}
	return o.ExpenseIDs
}
