package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getartha/ledgerhub/common"
	"github.com/getartha/ledgerhub/db/models"
	"github.com/getartha/ledgerhub/lib/responses"
	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun"
)

type BillLineParams struct {
	Description      string `json:"description" validate:"required"`
	ExpenseAccountID int64  `json:"expense_account_id" validate:"required"`
	TaxCodeID        int64  `json:"tax_code_id"`
	Quantity         int64  `json:"quantity" validate:"required,gt=0"`
	UnitPrice        int64  `json:"unit_price" validate:"gte=0"`
	Discount         int64  `json:"discount" validate:"gte=0"`
}

type BillParams struct {
	Number   string          `json:"number"`
	VendorID int64           `json:"vendor_id" validate:"required"`
	BillDate time.Time       `json:"bill_date" validate:"required"`
	DueDate  *time.Time      `json:"due_date"`
	Memo     string          `json:"memo"`
	Lines    []BillLineParams `json:"lines" validate:"dive"`
}

// BillFilter is the typed filter applied to bill listings instead of
// assembling WHERE clauses from raw query strings.
type BillFilter struct {
	Status   string
	VendorID int64
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

func (f BillFilter) ApplyTo(query *bun.SelectQuery) *bun.SelectQuery {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.VendorID != 0 {
		query = query.Where("vendor_id = ?", f.VendorID)
	}
	if !f.From.IsZero() {
		query = query.Where("bill_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		query = query.Where("bill_date <= ?", f.To)
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query = query.Limit(limit)
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}
	return query
}

// CreateBill creates a draft bill with priced lines. Line taxes and the
// bill totals are always computed server-side from the chart of accounts
// and tax codes; client-supplied amounts are limited to qty/price/discount.
func (svc *LedgerhubService) CreateBill(ctx context.Context, params *BillParams) (*models.Bill, error) {
	vendor, err := svc.FindVendor(ctx, params.VendorID)
	if err != nil {
		if errors.Is(err, responses.NotFoundError) {
			return nil, responses.ValidationError("vendor does not exist")
		}
		return nil, err
	}
	if !vendor.Active {
		return nil, responses.ValidationError("vendor is deactivated")
	}

	bill := &models.Bill{
		Number:     params.Number,
		VendorID:   vendor.ID,
		BillDate:   params.BillDate,
		Memo:       params.Memo,
		Status:     common.BillStatusDraft,
		Interstate: svc.isInterstate(vendor),
	}
	if bill.Number == "" {
		bill.Number = fmt.Sprintf("BILL-%s", random.String(8, random.Uppercase, random.Numeric))
	}
	if params.DueDate != nil {
		bill.DueDate = bun.NullTime{Time: *params.DueDate}
	}

	lines, err := svc.priceLines(ctx, params.Lines, bill.Interstate)
	if err != nil {
		return nil, err
	}
	bill.Lines = lines
	sumBillTotals(bill)

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(bill).Exec(ctx); err != nil {
			if strings.Contains(err.Error(), "duplicate") {
				return responses.ValidationError("a bill with this number already exists")
			}
			return err
		}
		for _, line := range bill.Lines {
			line.BillID = bill.ID
		}
		if len(bill.Lines) > 0 {
			if _, err := tx.NewInsert().Model(&bill.Lines).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// UpdateBill replaces a draft bill's memo, dates and lines wholesale and
// recomputes the totals. Posted bills are immutable.
func (svc *LedgerhubService) UpdateBill(ctx context.Context, billId int64, params *BillParams) (*models.Bill, error) {
	var bill models.Bill

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&bill).Where("bill.id = ?", billId).For("UPDATE").Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return responses.NotFoundError
		}
		if err != nil {
			return err
		}
		if bill.Status != common.BillStatusDraft {
			return responses.AlreadyPostedError
		}

		lines, err := svc.priceLines(ctx, params.Lines, bill.Interstate)
		if err != nil {
			return err
		}

		bill.BillDate = params.BillDate
		bill.Memo = params.Memo
		bill.DueDate = bun.NullTime{}
		if params.DueDate != nil {
			bill.DueDate = bun.NullTime{Time: *params.DueDate}
		}
		bill.Lines = lines
		sumBillTotals(&bill)

		if _, err := tx.NewDelete().Model((*models.BillLine)(nil)).Where("bill_id = ?", bill.ID).Exec(ctx); err != nil {
			return err
		}
		for _, line := range bill.Lines {
			line.BillID = bill.ID
		}
		if len(bill.Lines) > 0 {
			if _, err := tx.NewInsert().Model(&bill.Lines).Exec(ctx); err != nil {
				return err
			}
		}
		_, err = tx.NewUpdate().Model(&bill).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (svc *LedgerhubService) FindBill(ctx context.Context, billId int64) (*models.Bill, error) {
	var bill models.Bill
	err := svc.DB.NewSelect().Model(&bill).
		Relation("Vendor").
		Relation("Lines").
		Relation("Lines.TaxCode").
		Where("bill.id = ?", billId).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, responses.NotFoundError
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (svc *LedgerhubService) BillsFor(ctx context.Context, filter BillFilter) ([]models.Bill, error) {
	bills := []models.Bill{}
	query := svc.DB.NewSelect().Model(&bills).Relation("Vendor").OrderExpr("bill.id DESC")
	query = filter.ApplyTo(query)
	err := query.Scan(ctx)
	return bills, err
}

// isInterstate decides the GST place-of-supply: a vendor registered in a
// different state than the company is an inter-state (IGST) supply.
// Unknown state codes on either side default to intra-state.
func (svc *LedgerhubService) isInterstate(vendor *models.Vendor) bool {
	return vendor.StateCode != "" &&
		svc.Config.CompanyStateCode != "" &&
		vendor.StateCode != svc.Config.CompanyStateCode
}

func (svc *LedgerhubService) priceLines(ctx context.Context, params []BillLineParams, interstate bool) ([]*models.BillLine, error) {
	lines := make([]*models.BillLine, 0, len(params))
	for i, lp := range params {
		expenseAccount, err := svc.FindAccount(ctx, lp.ExpenseAccountID)
		if err != nil {
			if errors.Is(err, responses.NotFoundError) {
				return nil, responses.ValidationError(fmt.Sprintf("line %d: expense account does not exist", i+1))
			}
			return nil, err
		}
		if !expenseAccount.Active {
			return nil, responses.ValidationError(fmt.Sprintf("line %d: expense account is deactivated", i+1))
		}
		if expenseAccount.Type != common.AccountTypeExpense {
			return nil, responses.ValidationError(fmt.Sprintf("line %d: account %s is not an expense account", i+1, expenseAccount.Code))
		}

		var taxCode *models.TaxCode
		if lp.TaxCodeID != 0 {
			taxCode, err = svc.FindTaxCode(ctx, lp.TaxCodeID)
			if err != nil {
				if errors.Is(err, responses.NotFoundError) {
					return nil, responses.ValidationError(fmt.Sprintf("line %d: tax code does not exist", i+1))
				}
				return nil, err
			}
			if !taxCode.Active {
				return nil, responses.ValidationError(fmt.Sprintf("line %d: tax code is deactivated", i+1))
			}
		}

		net := lp.Quantity*lp.UnitPrice - lp.Discount
		if net < 0 {
			return nil, responses.ValidationError(fmt.Sprintf("line %d: discount exceeds the line amount", i+1))
		}
		breakdown := ComputeLineTax(net, taxCode, interstate)

		lines = append(lines, &models.BillLine{
			Description:      lp.Description,
			ExpenseAccountID: expenseAccount.ID,
			TaxCodeID:        lp.TaxCodeID,
			Quantity:         lp.Quantity,
			UnitPrice:        lp.UnitPrice,
			Discount:         lp.Discount,
			NetAmount:        net,
			CGSTAmount:       breakdown.CGST,
			SGSTAmount:       breakdown.SGST,
			IGSTAmount:       breakdown.IGST,
			CessAmount:       breakdown.Cess,
			TotalAmount:      net + breakdown.Total(),
		})
	}
	return lines, nil
}

func sumBillTotals(bill *models.Bill) {
	bill.Subtotal, bill.CGSTAmount, bill.SGSTAmount, bill.IGSTAmount, bill.CessAmount = 0, 0, 0, 0, 0
	for _, line := range bill.Lines {
		bill.Subtotal += line.NetAmount
		bill.CGSTAmount += line.CGSTAmount
		bill.SGSTAmount += line.SGSTAmount
		bill.IGSTAmount += line.IGSTAmount
		bill.CessAmount += line.CessAmount
	}
	bill.Total = bill.Subtotal + bill.CGSTAmount + bill.SGSTAmount + bill.IGSTAmount + bill.CessAmount
}
