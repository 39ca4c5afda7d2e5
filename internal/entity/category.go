package entity

import "database/sql"

type Category struct {
	Base
	Slug         string `gorm:"uniqueIndex"`
	Name         string `gorm:"not null"`
	Description  string
	DisplayOrder int
	IsActive     bool

	// Optional per-category window. It is displayed and used for results visibility only, the
	// global deadline alone decides whether a vote is accepted.
	VotingStart sql.NullTime
	VotingEnd   sql.NullTime

	Nominees []Nominee `gorm:"foreignKey:CategoryID"`
}

type Nominee struct {
	Base
	CategoryID   string   `gorm:"index;not null"`
	Category     Category `gorm:"foreignKey:CategoryID"`
	Name         string   `gorm:"not null"`
	Description  string
	ImageURL     string
	DisplayOrder int
}
