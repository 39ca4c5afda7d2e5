package entity

import (
	"database/sql"
	"time"
)

type Ballot struct {
	ID          string `gorm:"primarykey"`
	UserID      string `gorm:"uniqueIndex"`
	IsFinal     bool
	SubmittedAt sql.NullTime

	// Snapshot of the voter shown on the admin dashboard, refreshed on every vote write.
	DisplayName string
	AvatarURL   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Vote struct {
	ID         string   `gorm:"primarykey"`
	UserID     string   `gorm:"uniqueIndex:idx_votes_user_category;not null"`
	User       User     `gorm:"foreignKey:UserID"`
	CategoryID string   `gorm:"uniqueIndex:idx_votes_user_category;not null"`
	Category   Category `gorm:"foreignKey:CategoryID"`
	NomineeID  string   `gorm:"index;not null"`
	Nominee    Nominee  `gorm:"foreignKey:NomineeID"`
	IsFinal    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
