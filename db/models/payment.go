package models

import (
	"time"
)

// Payment : A payment recorded against a posted bill. TDSAmount is the
// portion withheld at source; the vendor receives Amount - TDSAmount.
type Payment struct {
	ID             int64     `json:"id" bun:",pk,autoincrement"`
	BillID         int64     `json:"bill_id" bun:",notnull"`
	Bill           *Bill     `json:"bill,omitempty" bun:"rel:belongs-to,join:bill_id=id"`
	Amount         int64     `json:"amount" bun:",notnull"`
	TDSAmount      int64     `json:"tds_amount" bun:",notnull,default:0"`
	Method         string    `json:"method" bun:",notnull"`
	Reference      string    `json:"reference,omitempty" bun:",nullzero"`
	JournalEntryID int64     `json:"journal_entry_id,omitempty" bun:",nullzero"`
	PaidAt         time.Time `json:"paid_at" bun:",notnull"`
	CreatedAt      time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
