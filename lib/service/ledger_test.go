package service

import (
	"testing"

	"github.com/getartha/ledgerhub/db/models"
	"github.com/stretchr/testify/assert"
)

var postingAccounts = BillPostingAccounts{
	AccountsPayable: models.Account{ID: 1},
	CGSTInput:       models.Account{ID: 2},
	SGSTInput:       models.Account{ID: 3},
	IGSTInput:       models.Account{ID: 4},
	CessInput:       models.Account{ID: 5},
}

func TestBillEntryLinesIntraState(t *testing.T) {
	bill := &models.Bill{
		Number:     "BILL-TEST1",
		Subtotal:   1000,
		CGSTAmount: 90,
		SGSTAmount: 90,
		Total:      1180,
		Lines: []*models.BillLine{
			{ExpenseAccountID: 10, NetAmount: 1000, Description: "office supplies"},
		},
	}

	lines := BillEntryLines(bill, postingAccounts)

	assert.NoError(t, CheckBalanced(lines))
	assert.Len(t, lines, 4)
	assert.Equal(t, int64(1000), lines[0].Debit)
	assert.Equal(t, int64(10), lines[0].AccountID)
	assert.Equal(t, int64(90), lines[1].Debit)
	assert.Equal(t, postingAccounts.CGSTInput.ID, lines[1].AccountID)
	assert.Equal(t, int64(90), lines[2].Debit)
	assert.Equal(t, postingAccounts.SGSTInput.ID, lines[2].AccountID)
	assert.Equal(t, int64(1180), lines[3].Credit)
	assert.Equal(t, postingAccounts.AccountsPayable.ID, lines[3].AccountID)
}

func TestBillEntryLinesInterState(t *testing.T) {
	bill := &models.Bill{
		Number:     "BILL-TEST2",
		Interstate: true,
		Subtotal:   5000,
		IGSTAmount: 900,
		Total:      5900,
		Lines: []*models.BillLine{
			{ExpenseAccountID: 10, NetAmount: 2000},
			{ExpenseAccountID: 11, NetAmount: 3000},
		},
	}

	lines := BillEntryLines(bill, postingAccounts)

	assert.NoError(t, CheckBalanced(lines))
	assert.Len(t, lines, 4)
	assert.Equal(t, postingAccounts.IGSTInput.ID, lines[2].AccountID)
	assert.Equal(t, int64(900), lines[2].Debit)
	assert.Equal(t, int64(5900), lines[3].Credit)
}

func TestBillEntryLinesSkipZeroNetLines(t *testing.T) {
	bill := &models.Bill{
		Number:   "BILL-TEST3",
		Subtotal: 500,
		Total:    500,
		Lines: []*models.BillLine{
			{ExpenseAccountID: 10, NetAmount: 500},
			{ExpenseAccountID: 11, NetAmount: 0},
		},
	}

	lines := BillEntryLines(bill, postingAccounts)

	assert.NoError(t, CheckBalanced(lines))
	assert.Len(t, lines, 2)
}

func TestPaymentEntryLinesWithTDS(t *testing.T) {
	accounts := PaymentPostingAccounts{
		AccountsPayable: models.Account{ID: 1},
		Bank:            models.Account{ID: 6},
		TDSPayable:      models.Account{ID: 7},
	}
	bill := &models.Bill{Number: "BILL-TEST4"}
	payment := &models.Payment{Amount: 1180, TDSAmount: 100, Method: "neft"}

	lines := PaymentEntryLines(payment, bill, accounts)

	assert.NoError(t, CheckBalanced(lines))
	assert.Len(t, lines, 3)
	assert.Equal(t, int64(1180), lines[0].Debit)
	assert.Equal(t, accounts.AccountsPayable.ID, lines[0].AccountID)
	assert.Equal(t, int64(1080), lines[1].Credit)
	assert.Equal(t, accounts.Bank.ID, lines[1].AccountID)
	assert.Equal(t, int64(100), lines[2].Credit)
	assert.Equal(t, accounts.TDSPayable.ID, lines[2].AccountID)
}

func TestPaymentEntryLinesWithoutTDS(t *testing.T) {
	accounts := PaymentPostingAccounts{
		AccountsPayable: models.Account{ID: 1},
		Bank:            models.Account{ID: 6},
	}
	bill := &models.Bill{Number: "BILL-TEST5"}
	payment := &models.Payment{Amount: 500, Method: "upi"}

	lines := PaymentEntryLines(payment, bill, accounts)

	assert.NoError(t, CheckBalanced(lines))
	assert.Len(t, lines, 2)
	assert.Equal(t, int64(500), lines[1].Credit)
}

func TestCheckBalancedRejectsImbalance(t *testing.T) {
	lines := []models.JournalLine{
		{AccountID: 1, Debit: 100},
		{AccountID: 2, Credit: 90},
	}
	assert.Error(t, CheckBalanced(lines))
}

func TestCheckBalancedRejectsTwoSidedLine(t *testing.T) {
	lines := []models.JournalLine{
		{AccountID: 1, Debit: 100, Credit: 100},
	}
	assert.Error(t, CheckBalanced(lines))
}

func TestCheckBalancedRejectsZeroLine(t *testing.T) {
	lines := []models.JournalLine{
		{AccountID: 1},
		{AccountID: 2},
	}
	assert.Error(t, CheckBalanced(lines))
}

func TestCheckBalancedRejectsNegativeAmount(t *testing.T) {
	lines := []models.JournalLine{
		{AccountID: 1, Debit: -100},
		{AccountID: 2, Credit: -100},
	}
	assert.Error(t, CheckBalanced(lines))
}

func TestCheckBalancedRejectsEmptyEntry(t *testing.T) {
	assert.Error(t, CheckBalanced([]models.JournalLine{}))
}
