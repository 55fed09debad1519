package models

import (
	"time"

	"bilanz/internal/uuid"

	"gorm.io/gorm"
)

// EntryStatus represents the posting state of a journal entry.
// Only posted entries count toward budget achievements.
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "draft"
	EntryStatusPosted EntryStatus = "posted"
)

// JournalEntry is a ledger movement tagged with an analytical account.
// Amounts are non-negative by validation, which keeps achieved amounts
// non-negative by construction.
type JournalEntry struct {
	Base
	UserID              uint        `gorm:"not null;index" json:"user_id"`
	Reference           string      `gorm:"size:36;uniqueIndex" json:"reference"`
	AnalyticalAccountID uint        `gorm:"not null;index" json:"analytical_account_id"`
	Description         string      `json:"description"`
	Amount              float64     `gorm:"not null" json:"amount"`
	EntryDate           time.Time   `gorm:"not null;index" json:"entry_date"`
	Status              EntryStatus `gorm:"not null;default:posted" json:"status"`

	AnalyticalAccount AnalyticalAccount `gorm:"foreignKey:AnalyticalAccountID" json:"analytical_account,omitempty"`
}

// BeforeCreate assigns a time-ordered UUIDv7 reference to new entries.
func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.Reference == "" {
		e.Reference = uuid.New()
	}
	return nil
}
