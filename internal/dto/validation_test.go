package dto_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators_DecimalGTE0(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterValidators(v))

	ok := dto.JournalLineRequest{AccountID: "a", Debit: decimal.RequireFromString("10.50")}
	assert.NoError(t, v.Struct(ok))

	zero := dto.JournalLineRequest{AccountID: "a"}
	assert.NoError(t, v.Struct(zero))

	negative := dto.JournalLineRequest{AccountID: "a", Credit: decimal.RequireFromString("-1")}
	assert.Error(t, v.Struct(negative))
}
