package models

import (
	"time"

	"github.com/akeren/commit-waitlist/pkg/constants"
)

// WaitlistEntry is append-only; nothing in the service updates or deletes rows.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex:waitlist_email_key" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (WaitlistEntry) TableName() string {
	return constants.WaitlistTable
}
