package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/getartha/ledgerhub/common"
	"github.com/getartha/ledgerhub/db/models"
	"github.com/getartha/ledgerhub/lib/responses"
)

func (svc *LedgerhubService) CreateAccount(ctx context.Context, account *models.Account) error {
	account.Active = true
	_, err := svc.DB.NewInsert().Model(account).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return responses.ValidationError("an account with this code already exists")
		}
		return err
	}
	return nil
}

func (svc *LedgerhubService) ListAccounts(ctx context.Context, activeOnly bool) ([]models.Account, error) {
	accounts := []models.Account{}
	query := svc.DB.NewSelect().Model(&accounts).OrderExpr("code ASC")
	if activeOnly {
		query.Where("active")
	}
	err := query.Scan(ctx)
	return accounts, err
}

func (svc *LedgerhubService) FindAccount(ctx context.Context, accountId int64) (*models.Account, error) {
	var account models.Account
	err := svc.DB.NewSelect().Model(&account).Where("id = ?", accountId).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, responses.NotFoundError
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (svc *LedgerhubService) DeactivateAccount(ctx context.Context, accountId int64) error {
	res, err := svc.DB.NewUpdate().Model((*models.Account)(nil)).
		Set("active = ?", false).
		Where("id = ?", accountId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return responses.NotFoundError
	}
	return nil
}

// AccountForTag finds the active control account carrying a system tag
// (accounts payable, bank, the tax input accounts, TDS payable).
func (svc *LedgerhubService) AccountForTag(ctx context.Context, tag string) (models.Account, error) {
	account := models.Account{}
	err := svc.DB.NewSelect().Model(&account).Where("system_tag = ? AND active", tag).Limit(1).Scan(ctx)
	return account, err
}

// AccountLedger returns the posted journal lines touching one account
// along with the running totals. The balance is reported from the
// account's normal-balance side.
type AccountLedger struct {
	Account *models.Account      `json:"account"`
	Lines   []models.JournalLine `json:"lines"`
	Debits  int64                `json:"debits"`
	Credits int64                `json:"credits"`
	Balance int64                `json:"balance"`
}

func (svc *LedgerhubService) LedgerForAccount(ctx context.Context, accountId int64) (*AccountLedger, error) {
	account, err := svc.FindAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}

	lines := []models.JournalLine{}
	err = svc.DB.NewSelect().Model(&lines).
		Join("JOIN journal_entries AS je ON je.id = journal_line.journal_entry_id").
		Where("journal_line.account_id = ? AND je.state = ?", accountId, common.JournalStatePosted).
		OrderExpr("journal_line.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	ledger := &AccountLedger{Account: account, Lines: lines}
	for _, line := range lines {
		ledger.Debits += line.Debit
		ledger.Credits += line.Credit
	}
	if account.NormalBalance == common.NormalBalanceDebit {
		ledger.Balance = ledger.Debits - ledger.Credits
	} else {
		ledger.Balance = ledger.Credits - ledger.Debits
	}
	return ledger, nil
}

func (svc *LedgerhubService) CreateTaxCode(ctx context.Context, taxCode *models.TaxCode) error {
	taxCode.Active = true
	_, err := svc.DB.NewInsert().Model(taxCode).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return responses.ValidationError("a tax code with this code already exists")
		}
		return err
	}
	return nil
}

func (svc *LedgerhubService) ListTaxCodes(ctx context.Context, activeOnly bool) ([]models.TaxCode, error) {
	taxCodes := []models.TaxCode{}
	query := svc.DB.NewSelect().Model(&taxCodes).OrderExpr("code ASC")
	if activeOnly {
		query.Where("active")
	}
	err := query.Scan(ctx)
	return taxCodes, err
}

func (svc *LedgerhubService) FindTaxCode(ctx context.Context, taxCodeId int64) (*models.TaxCode, error) {
	var taxCode models.TaxCode
	err := svc.DB.NewSelect().Model(&taxCode).Where("id = ?", taxCodeId).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, responses.NotFoundError
	}
	if err != nil {
		return nil, err
	}
	return &taxCode, nil
}

func (svc *LedgerhubService) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	vendor.Active = true
	_, err := svc.DB.NewInsert().Model(vendor).Exec(ctx)
	return err
}

func (svc *LedgerhubService) ListVendors(ctx context.Context, activeOnly bool) ([]models.Vendor, error) {
	vendors := []models.Vendor{}
	query := svc.DB.NewSelect().Model(&vendors).OrderExpr("name ASC")
	if activeOnly {
		query.Where("active")
	}
	err := query.Scan(ctx)
	return vendors, err
}

func (svc *LedgerhubService) FindVendor(ctx context.Context, vendorId int64) (*models.Vendor, error) {
	var vendor models.Vendor
	err := svc.DB.NewSelect().Model(&vendor).Where("id = ?", vendorId).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, responses.NotFoundError
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (svc *LedgerhubService) DeactivateVendor(ctx context.Context, vendorId int64) error {
	res, err := svc.DB.NewUpdate().Model((*models.Vendor)(nil)).
		Set("active = ?", false).
		Where("id = ?", vendorId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return responses.NotFoundError
	}
	return nil
}
