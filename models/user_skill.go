package models

// Rating bounds for a held skill. The front end rates 1 (beginner)
// through 5 (expert).
const (
	MinSkillRating = 1
	MaxSkillRating = 5
)

// UserSkill links a user to a skill with a proficiency rating. A user holds
// each skill at most once; the composite unique index enforces it.
type UserSkill struct {
	ID      uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	UserID  uint `json:"user_id" db:"user_id" gorm:"not null;index:idx_user_skill_user_id;uniqueIndex:idx_user_skill_unique"`
	SkillID uint `json:"skill_id" db:"skill_id" gorm:"not null;uniqueIndex:idx_user_skill_unique"`
	Rating  int  `json:"rating" db:"rating" gorm:"type:integer;not null;default:1"`

	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Skill Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID;references:ID"`
}

// ClampRating forces a submitted rating into the allowed 1..5 range.
func ClampRating(rating int) int {
	if rating < MinSkillRating {
		return MinSkillRating
	}
	if rating > MaxSkillRating {
		return MaxSkillRating
	}
	return rating
}
