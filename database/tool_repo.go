package database

import (
	"errors"
	"strings"

	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
)

type ToolRepo struct {
	db *gorm.DB
}

func NewToolRepo(db *gorm.DB) *ToolRepo {
	return &ToolRepo{db}
}

// FindByName returns the tool with the exact name, or (nil, nil).
func (r *ToolRepo) FindByName(name string) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.Where("name = ?", name).First(&tool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// FindOrCreate returns the tool with the given name, creating it first
// if it does not exist. Project creation links tools this way.
func (r *ToolRepo) FindOrCreate(name string) (*models.Tool, error) {
	tool, err := r.FindByName(name)
	if err != nil {
		return nil, err
	}
	if tool != nil {
		return tool, nil
	}
	tool = &models.Tool{Name: name}
	if err := r.db.Create(tool).Error; err != nil {
		return nil, err
	}
	return tool, nil
}

// SearchByName returns up to limit tools whose name contains term,
// case-insensitively.
func (r *ToolRepo) SearchByName(term string, limit int) ([]*models.Tool, error) {
	like := "%" + strings.ToLower(term) + "%"
	var tools []*models.Tool
	err := r.db.Where("LOWER(name) LIKE ?", like).Order("id").Limit(limit).Find(&tools).Error
	return tools, err
}

// Add inserts a new tool.
func (r *ToolRepo) Add(tool *models.Tool) error {
	return r.db.Create(tool).Error
}

// Count returns the number of stored tools.
func (r *ToolRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tool{}).Count(&count).Error
	return count, err
}
