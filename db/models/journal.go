package models

import (
	"time"
)

// JournalEntry : A balanced double-entry record. The owning side of an
// ordered set of journal lines whose debits must equal their credits.
// Created atomically with the business event that produced it.
type JournalEntry struct {
	ID         int64          `json:"id" bun:",pk,autoincrement"`
	EntryDate  time.Time      `json:"entry_date" bun:",notnull"`
	Memo       string         `json:"memo,omitempty" bun:",nullzero"`
	SourceType string         `json:"source_type" bun:",notnull"`
	SourceID   int64          `json:"source_id" bun:",notnull"`
	State      string         `json:"state" bun:",notnull,default:'draft'"`
	Lines      []*JournalLine `json:"lines,omitempty" bun:"rel:has-many,join:id=journal_entry_id"`
	CreatedAt  time.Time      `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

// JournalLine : One side of a journal entry. Exactly one of Debit/Credit
// is positive, the other is zero (enforced by a DB check constraint too).
type JournalLine struct {
	ID             int64    `json:"id" bun:",pk,autoincrement"`
	JournalEntryID int64    `json:"journal_entry_id" bun:",notnull"`
	AccountID      int64    `json:"account_id" bun:",notnull"`
	Account        *Account `json:"account,omitempty" bun:"rel:belongs-to,join:account_id=id"`
	Debit          int64    `json:"debit" bun:",notnull,default:0"`
	Credit         int64    `json:"credit" bun:",notnull,default:0"`
	Memo           string   `json:"memo,omitempty" bun:",nullzero"`
}
