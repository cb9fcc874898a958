package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Bill : Vendor bill model. All amounts are int64 minor units (paise).
// A bill is mutable only while in the draft status. Once posted, only
// balance_due and status change, driven by payments.
type Bill struct {
	ID             int64        `json:"id" bun:",pk,autoincrement"`
	Number         string       `json:"number" bun:",notnull,unique"`
	VendorID       int64        `json:"vendor_id" bun:",notnull"`
	Vendor         *Vendor      `json:"vendor,omitempty" bun:"rel:belongs-to,join:vendor_id=id"`
	BillDate       time.Time    `json:"bill_date" bun:",notnull"`
	DueDate        bun.NullTime `json:"due_date"`
	Memo           string       `json:"memo,omitempty" bun:",nullzero"`
	Interstate     bool         `json:"interstate" bun:",nullzero"`
	Subtotal       int64        `json:"subtotal" bun:",notnull,default:0"`
	CGSTAmount     int64        `json:"cgst_amount" bun:",notnull,default:0"`
	SGSTAmount     int64        `json:"sgst_amount" bun:",notnull,default:0"`
	IGSTAmount     int64        `json:"igst_amount" bun:",notnull,default:0"`
	CessAmount     int64        `json:"cess_amount" bun:",notnull,default:0"`
	Total          int64        `json:"total" bun:",notnull,default:0"`
	BalanceDue     int64        `json:"balance_due" bun:",notnull,default:0"`
	Status         string       `json:"status" bun:",notnull,default:'draft'"`
	JournalEntryID int64        `json:"journal_entry_id,omitempty" bun:",nullzero"`
	Lines          []*BillLine  `json:"lines,omitempty" bun:"rel:has-many,join:id=bill_id"`
	CreatedAt      time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      bun.NullTime `json:"updated_at"`
	PostedAt       bun.NullTime `json:"posted_at"`
}

func (b *Bill) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		b.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Bill)(nil)

// BillLine : A single priced line on a bill, owned exclusively by that bill.
// Tax amounts are computed server-side from the line's tax code.
type BillLine struct {
	ID               int64    `json:"id" bun:",pk,autoincrement"`
	BillID           int64    `json:"bill_id" bun:",notnull"`
	Description      string   `json:"description" bun:",notnull"`
	ExpenseAccountID int64    `json:"expense_account_id" bun:",notnull"`
	ExpenseAccount   *Account `json:"expense_account,omitempty" bun:"rel:belongs-to,join:expense_account_id=id"`
	TaxCodeID        int64    `json:"tax_code_id,omitempty" bun:",nullzero"`
	TaxCode          *TaxCode `json:"tax_code,omitempty" bun:"rel:belongs-to,join:tax_code_id=id"`
	Quantity         int64    `json:"quantity" bun:",notnull"`
	UnitPrice        int64    `json:"unit_price" bun:",notnull"`
	Discount         int64    `json:"discount" bun:",notnull,default:0"`
	NetAmount        int64    `json:"net_amount" bun:",notnull"`
	CGSTAmount       int64    `json:"cgst_amount" bun:",notnull,default:0"`
	SGSTAmount       int64    `json:"sgst_amount" bun:",notnull,default:0"`
	IGSTAmount       int64    `json:"igst_amount" bun:",notnull,default:0"`
	CessAmount       int64    `json:"cess_amount" bun:",notnull,default:0"`
	TotalAmount      int64    `json:"total_amount" bun:",notnull"`
}
