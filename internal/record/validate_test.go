package record_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamik3/oy-vey-pay/internal/record"
)

func TestPayloadValidate(t *testing.T) {
	valid := record.Payload{
		Title:    "Rent",
		Amount:   decimal.NewFromInt(2500),
		Tag:      "rent",
		Currency: "ILS",
	}

	tests := []struct {
		name    string
		kind    record.Kind
		mutate  func(p *record.Payload)
		wantErr string
	}{
		{
			name:   "valid expense",
			kind:   record.KindExpense,
			mutate: func(p *record.Payload) {},
		},
		{
			name: "valid income",
			kind: record.KindIncome,
			mutate: func(p *record.Payload) {
				p.Tag = "salary"
			},
		},
		{
			name:    "empty title",
			kind:    record.KindExpense,
			mutate:  func(p *record.Payload) { p.Title = "   " },
			wantErr: "Title is required",
		},
		{
			name:    "zero amount",
			kind:    record.KindExpense,
			mutate:  func(p *record.Payload) { p.Amount = decimal.Zero },
			wantErr: "Amount must be greater than zero",
		},
		{
			name:    "negative amount",
			kind:    record.KindExpense,
			mutate:  func(p *record.Payload) { p.Amount = decimal.NewFromInt(-5) },
			wantErr: "Amount must be greater than zero",
		},
		{
			name:    "unknown tag",
			kind:    record.KindExpense,
			mutate:  func(p *record.Payload) { p.Tag = "crypto" },
			wantErr: "Invalid tag",
		},
		{
			name: "income tag rejected on expense",
			kind: record.KindExpense,
			mutate: func(p *record.Payload) {
				p.Tag = "salary"
			},
			wantErr: "Invalid tag",
		},
		{
			name: "expense tag rejected on income",
			kind: record.KindIncome,
			mutate: func(p *record.Payload) {
				p.Tag = "rent"
			},
			wantErr: "Invalid tag",
		},
		{
			name:    "unknown currency",
			kind:    record.KindExpense,
			mutate:  func(p *record.Payload) { p.Currency = "GBP" },
			wantErr: "Invalid currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := p.Validate(tt.kind)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *record.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantErr, vErr.Reason)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := record.ParseID("11111111-1111-1111-1111-111111111111", "user id")
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", id.String())

	_, err = record.ParseID("not-a-uuid", "user id")
	var vErr *record.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Invalid user id", vErr.Reason)

	_, err = record.ParseID("abc", "expense id")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Invalid expense id", vErr.Reason)
}
