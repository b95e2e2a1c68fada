package database

import (
	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
)

type ProjectToolRepo struct {
	db *gorm.DB
}

func NewProjectToolRepo(db *gorm.DB) *ProjectToolRepo {
	return &ProjectToolRepo{db}
}

// Add inserts a new project tool link.
func (r *ProjectToolRepo) Add(projectTool *models.ProjectTool) error {
	return r.db.Create(projectTool).Error
}
