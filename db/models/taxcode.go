package models

import (
	"time"
)

// TaxCode : GST tax code model. All rates are integer basis points (1800 = 18%).
// The component rates may be left at zero, in which case the poster falls back
// to splitting Rate down the middle (intra-state) or using Rate as-is (inter-state).
type TaxCode struct {
	ID          int64     `json:"id" bun:",pk,autoincrement"`
	Code        string    `json:"code" bun:",notnull,unique" validate:"required"`
	Name        string    `json:"name" bun:",notnull" validate:"required"`
	RateBps     int64     `json:"rate_bps" bun:",notnull" validate:"gte=0,lte=10000"`
	CGSTRateBps int64     `json:"cgst_rate_bps" bun:",nullzero" validate:"gte=0"`
	SGSTRateBps int64     `json:"sgst_rate_bps" bun:",nullzero" validate:"gte=0"`
	IGSTRateBps int64     `json:"igst_rate_bps" bun:",nullzero" validate:"gte=0"`
	CessRateBps int64     `json:"cess_rate_bps" bun:",nullzero" validate:"gte=0"`
	Active      bool      `json:"active" bun:",notnull,default:true"`
	CreatedAt   time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
