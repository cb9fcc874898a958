package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/getartha/ledgerhub/common"
	"github.com/getartha/ledgerhub/db/models"
	"github.com/getartha/ledgerhub/lib/responses"
)

type PaymentParams struct {
	BillID    int64      `json:"bill_id" validate:"required"`
	Amount    int64      `json:"amount" validate:"required,gt=0"`
	TDSAmount int64      `json:"tds_amount" validate:"gte=0"`
	Method    string     `json:"method" validate:"required"`
	Reference string     `json:"reference"`
	PaidAt    *time.Time `json:"paid_at"`
}

// PaymentPostingAccounts holds the resolved control accounts a payment
// posting touches.
type PaymentPostingAccounts struct {
	AccountsPayable models.Account
	Bank            models.Account
	TDSPayable      models.Account
}

func (svc *LedgerhubService) paymentPostingAccounts(ctx context.Context, withTDS bool) (PaymentPostingAccounts, error) {
	accounts := PaymentPostingAccounts{}
	var err error

	accounts.AccountsPayable, err = svc.taggedAccount(ctx, common.AccountTagAccountsPayable, responses.NoAPAccountError)
	if err != nil {
		return accounts, err
	}
	accounts.Bank, err = svc.taggedAccount(ctx, common.AccountTagBank, responses.NoBankAccountError)
	if err != nil {
		return accounts, err
	}
	if withTDS {
		accounts.TDSPayable, err = svc.taggedAccount(ctx, common.AccountTagTDSPayable, responses.NoTDSAccountError)
		if err != nil {
			return accounts, err
		}
	}
	return accounts, nil
}

// RecordPayment records a payment against a posted bill and posts the
// matching journal entry in the same transaction. The bill's balance_due
// and status are recomputed under the row lock; a payment exceeding the
// outstanding balance is rejected before anything is written.
func (svc *LedgerhubService) RecordPayment(ctx context.Context, params *PaymentParams) (*models.Payment, error) {
	if params.TDSAmount > params.Amount {
		return nil, responses.ValidationError("tds_amount cannot exceed the payment amount")
	}

	accounts, err := svc.paymentPostingAccounts(ctx, params.TDSAmount > 0)
	if err != nil {
		return nil, err
	}

	var bill models.Bill

	tx, err := svc.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}

	err = tx.NewSelect().Model(&bill).Where("bill.id = ?", params.BillID).For("UPDATE").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil, responses.NotFoundError
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if bill.Status == common.BillStatusDraft {
		tx.Rollback()
		return nil, responses.NotPostedError
	}
	if params.Amount > bill.BalanceDue {
		tx.Rollback()
		return nil, responses.OverpaymentError
	}

	paidAt := time.Now()
	if params.PaidAt != nil {
		paidAt = *params.PaidAt
	}
	payment := &models.Payment{
		BillID:    bill.ID,
		Amount:    params.Amount,
		TDSAmount: params.TDSAmount,
		Method:    params.Method,
		Reference: params.Reference,
		PaidAt:    paidAt,
	}
	if _, err := tx.NewInsert().Model(payment).Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	lines := PaymentEntryLines(payment, &bill, accounts)
	if err := CheckBalanced(lines); err != nil {
		tx.Rollback()
		return nil, err
	}

	entry := models.JournalEntry{
		EntryDate:  paidAt,
		Memo:       fmt.Sprintf("Payment for bill %s", bill.Number),
		SourceType: common.JournalSourcePayment,
		SourceID:   payment.ID,
		State:      common.JournalStatePosted,
	}
	if _, err := tx.NewInsert().Model(&entry).Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range lines {
		lines[i].JournalEntryID = entry.ID
	}
	if _, err := tx.NewInsert().Model(&lines).Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	payment.JournalEntryID = entry.ID
	if _, err := tx.NewUpdate().Model(payment).Column("journal_entry_id").WherePK().Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	newBalance := bill.BalanceDue - params.Amount
	newStatus := common.BillStatusPartial
	if newBalance == 0 {
		newStatus = common.BillStatusPaid
	}
	if _, err := tx.NewUpdate().Model(&bill).
		Set("balance_due = ?", newBalance).
		Set("status = ?", newStatus).
		Where("id = ?", bill.ID).
		Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Non-fatal notification, the payment is already committed.
	svc.PublishJournalEvent(ctx, EventKindPaymentRecorded, &entry, params.Amount)

	return payment, nil
}

func (svc *LedgerhubService) PaymentsForBill(ctx context.Context, billId int64) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := svc.DB.NewSelect().Model(&payments).
		Where("bill_id = ?", billId).
		OrderExpr("id ASC").
		Scan(ctx)
	return payments, err
}
