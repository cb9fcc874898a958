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

// BillPostingAccounts holds the resolved control accounts a bill posting
// debits and credits. Tax accounts are only resolved for the components
// the bill actually carries.
type BillPostingAccounts struct {
	AccountsPayable models.Account
	CGSTInput       models.Account
	SGSTInput       models.Account
	IGSTInput       models.Account
	CessInput       models.Account
}

// BillEntryLines translates a finalized bill into balanced journal lines:
// debit each line's expense account for its net amount, debit the tax
// input accounts for the component totals, credit accounts payable for
// the bill total. Pure so the balancing invariant is testable without a
// database.
func BillEntryLines(bill *models.Bill, accounts BillPostingAccounts) []models.JournalLine {
	lines := []models.JournalLine{}
	for _, billLine := range bill.Lines {
		if billLine.NetAmount == 0 {
			continue
		}
		lines = append(lines, models.JournalLine{
			AccountID: billLine.ExpenseAccountID,
			Debit:     billLine.NetAmount,
			Memo:      billLine.Description,
		})
	}
	if bill.CGSTAmount > 0 {
		lines = append(lines, models.JournalLine{AccountID: accounts.CGSTInput.ID, Debit: bill.CGSTAmount, Memo: "CGST input credit"})
	}
	if bill.SGSTAmount > 0 {
		lines = append(lines, models.JournalLine{AccountID: accounts.SGSTInput.ID, Debit: bill.SGSTAmount, Memo: "SGST input credit"})
	}
	if bill.IGSTAmount > 0 {
		lines = append(lines, models.JournalLine{AccountID: accounts.IGSTInput.ID, Debit: bill.IGSTAmount, Memo: "IGST input credit"})
	}
	if bill.CessAmount > 0 {
		lines = append(lines, models.JournalLine{AccountID: accounts.CessInput.ID, Debit: bill.CessAmount, Memo: "Cess input credit"})
	}
	lines = append(lines, models.JournalLine{
		AccountID: accounts.AccountsPayable.ID,
		Credit:    bill.Total,
		Memo:      fmt.Sprintf("Bill %s", bill.Number),
	})
	return lines
}

// PaymentEntryLines translates a payment into balanced journal lines:
// debit accounts payable for the full amount, credit the bank account for
// the amount actually paid out, credit TDS payable for the withheld part.
func PaymentEntryLines(payment *models.Payment, bill *models.Bill, accounts PaymentPostingAccounts) []models.JournalLine {
	lines := []models.JournalLine{
		{
			AccountID: accounts.AccountsPayable.ID,
			Debit:     payment.Amount,
			Memo:      fmt.Sprintf("Payment for bill %s", bill.Number),
		},
	}
	if payout := payment.Amount - payment.TDSAmount; payout > 0 {
		lines = append(lines, models.JournalLine{AccountID: accounts.Bank.ID, Credit: payout, Memo: payment.Method})
	}
	if payment.TDSAmount > 0 {
		lines = append(lines, models.JournalLine{AccountID: accounts.TDSPayable.ID, Credit: payment.TDSAmount, Memo: "TDS withheld"})
	}
	return lines
}

// CheckBalanced verifies the double-entry invariant before anything is
// written: every line carries exactly one positive side, and total debits
// equal total credits. The DB constraint trigger backs this up, but the
// invariant belongs to the poster, not the storage layer.
func CheckBalanced(lines []models.JournalLine) error {
	var debits, credits int64
	for _, line := range lines {
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("journal line for account %d carries a negative amount", line.AccountID)
		}
		if (line.Debit > 0) == (line.Credit > 0) {
			return fmt.Errorf("journal line for account %d must carry exactly one of debit/credit", line.AccountID)
		}
		debits += line.Debit
		credits += line.Credit
	}
	if debits == 0 {
		return errors.New("journal entry has no lines")
	}
	if debits != credits {
		return fmt.Errorf("journal entry does not balance: debits %d != credits %d", debits, credits)
	}
	return nil
}

// taggedAccount maps a missing control account to the given config error.
// Other lookup failures (a dropped connection, say) are not config errors
// and bubble up untouched.
func (svc *LedgerhubService) taggedAccount(ctx context.Context, tag string, missingErr *responses.ErrorResponse) (models.Account, error) {
	account, err := svc.AccountForTag(ctx, tag)
	if errors.Is(err, sql.ErrNoRows) {
		return account, missingErr
	}
	return account, err
}

func (svc *LedgerhubService) billPostingAccounts(ctx context.Context, bill *models.Bill) (BillPostingAccounts, error) {
	accounts := BillPostingAccounts{}
	var err error

	accounts.AccountsPayable, err = svc.taggedAccount(ctx, common.AccountTagAccountsPayable, responses.NoAPAccountError)
	if err != nil {
		return accounts, err
	}
	if bill.CGSTAmount > 0 {
		if accounts.CGSTInput, err = svc.taggedAccount(ctx, common.AccountTagCGSTInput, responses.NoTaxAccountError); err != nil {
			return accounts, err
		}
	}
	if bill.SGSTAmount > 0 {
		if accounts.SGSTInput, err = svc.taggedAccount(ctx, common.AccountTagSGSTInput, responses.NoTaxAccountError); err != nil {
			return accounts, err
		}
	}
	if bill.IGSTAmount > 0 {
		if accounts.IGSTInput, err = svc.taggedAccount(ctx, common.AccountTagIGSTInput, responses.NoTaxAccountError); err != nil {
			return accounts, err
		}
	}
	if bill.CessAmount > 0 {
		if accounts.CessInput, err = svc.taggedAccount(ctx, common.AccountTagCessInput, responses.NoTaxAccountError); err != nil {
			return accounts, err
		}
	}
	return accounts, nil
}

// PostBill runs the draft -> posted transition: it builds a balanced
// journal entry for the bill and commits the entry, its lines and the
// bill's status change as one transaction. Either everything is written
// or nothing is.
func (svc *LedgerhubService) PostBill(ctx context.Context, billId int64) (*models.Bill, error) {
	var bill models.Bill
	var entry models.JournalEntry

	tx, err := svc.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}

	err = tx.NewSelect().Model(&bill).Where("bill.id = ?", billId).For("UPDATE").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil, responses.NotFoundError
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if bill.Status != common.BillStatusDraft {
		tx.Rollback()
		return nil, responses.AlreadyPostedError
	}

	err = tx.NewSelect().Model(&bill.Lines).Where("bill_id = ?", bill.ID).OrderExpr("id ASC").Scan(ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(bill.Lines) == 0 {
		tx.Rollback()
		return nil, responses.ValidationError("bill has no lines")
	}
	// lines can individually price to zero (free qty, full discount)
	if bill.Total == 0 {
		tx.Rollback()
		return nil, responses.ValidationError("bill total is zero, nothing to post")
	}

	accounts, err := svc.billPostingAccounts(ctx, &bill)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	lines := BillEntryLines(&bill, accounts)
	if err := CheckBalanced(lines); err != nil {
		tx.Rollback()
		return nil, err
	}

	entry = models.JournalEntry{
		EntryDate:  bill.BillDate,
		Memo:       fmt.Sprintf("Bill %s", bill.Number),
		SourceType: common.JournalSourceBill,
		SourceID:   bill.ID,
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

	// The status guard makes a concurrent double post lose even if it
	// slipped past the row lock.
	res, err := tx.NewUpdate().Model(&bill).
		Set("status = ?", common.BillStatusPosted).
		Set("journal_entry_id = ?", entry.ID).
		Set("balance_due = ?", bill.Total).
		Set("posted_at = ?", time.Now()).
		Where("id = ? AND status = ?", bill.ID, common.BillStatusDraft).
		Exec(ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		tx.Rollback()
		return nil, responses.AlreadyPostedError
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	bill.Status = common.BillStatusPosted
	bill.JournalEntryID = entry.ID
	bill.BalanceDue = bill.Total

	// Notify collaborating services. Failures here are non-fatal: the
	// posting is already committed.
	svc.PublishJournalEvent(ctx, EventKindBillPosted, &entry, bill.Total)

	return &bill, nil
}

func (svc *LedgerhubService) FindJournalEntry(ctx context.Context, entryId int64) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := svc.DB.NewSelect().Model(&entry).
		Relation("Lines").
		Relation("Lines.Account").
		Where("journal_entry.id = ?", entryId).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, responses.NotFoundError
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (svc *LedgerhubService) JournalEntriesForSource(ctx context.Context, sourceType string, sourceId int64) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	err := svc.DB.NewSelect().Model(&entries).
		Relation("Lines").
		Where("journal_entry.source_type = ? AND journal_entry.source_id = ?", sourceType, sourceId).
		OrderExpr("journal_entry.id ASC").
		Scan(ctx)
	return entries, err
}
