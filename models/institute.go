package models

// Institute is a college/university a user can belong to.
type Institute struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
}
