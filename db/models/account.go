package models

import (
	"time"
)

// Account : Chart of accounts model. Reference data, deactivated but never deleted.
type Account struct {
	ID            int64     `json:"id" bun:",pk,autoincrement"`
	Code          string    `json:"code" bun:",notnull,unique" validate:"required"`
	Name          string    `json:"name" bun:",notnull" validate:"required"`
	Type          string    `json:"type" bun:",notnull" validate:"required,oneof=asset liability equity revenue expense"`
	NormalBalance string    `json:"normal_balance" bun:",notnull" validate:"required,oneof=debit credit"`
	SystemTag     string    `json:"system_tag,omitempty" bun:",nullzero"`
	Active        bool      `json:"active" bun:",notnull,default:true"`
	CreatedAt     time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
