package models

import (
	"time"
)

// Vendor : Vendor master model.
type Vendor struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	Name      string    `json:"name" bun:",notnull" validate:"required"`
	GSTIN     string    `json:"gstin,omitempty" bun:",nullzero"`
	StateCode string    `json:"state_code,omitempty" bun:",nullzero"`
	Active    bool      `json:"active" bun:",notnull,default:true"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
