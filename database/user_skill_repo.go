package database

import (
	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
)

type UserSkillRepo struct {
	db *gorm.DB
}

func NewUserSkillRepo(db *gorm.DB) *UserSkillRepo {
	return &UserSkillRepo{db}
}

// FindByUser returns all skill rows held by a user.
func (r *UserSkillRepo) FindByUser(userID uint) ([]*models.UserSkill, error) {
	var userSkills []*models.UserSkill
	err := r.db.Preload("Skill").Where("user_id = ?", userID).Find(&userSkills).Error
	return userSkills, err
}

// Add inserts a new user skill row.
func (r *UserSkillRepo) Add(userSkill *models.UserSkill) error {
	return r.db.Create(userSkill).Error
}

// DeleteByUser removes every skill row owned by a user. Used by the
// replace-all-then-reinsert profile update.
func (r *UserSkillRepo) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserSkill{}).Error
}
