package models

// Skill is a named ability users can hold at a rating (see UserSkill).
type Skill struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
}
