package models

// Tool is a named piece of tooling a project can use. Tools are seeded at
// startup and may also be created on demand during project creation.
type Tool struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
}
