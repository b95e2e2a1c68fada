package database

import (
	"errors"
	"strings"

	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindByName returns the skill with the exact name, or (nil, nil).
func (r *SkillRepo) FindByName(name string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("name = ?", name).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// SearchByName returns up to limit skills whose name contains term,
// case-insensitively.
func (r *SkillRepo) SearchByName(term string, limit int) ([]*models.Skill, error) {
	like := "%" + strings.ToLower(term) + "%"
	var skills []*models.Skill
	err := r.db.Where("LOWER(name) LIKE ?", like).Order("id").Limit(limit).Find(&skills).Error
	return skills, err
}

// Add inserts a new skill.
func (r *SkillRepo) Add(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// Count returns the number of stored skills.
func (r *SkillRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Skill{}).Count(&count).Error
	return count, err
}
