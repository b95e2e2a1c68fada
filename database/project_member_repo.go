package database

import (
	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
)

type ProjectMemberRepo struct {
	db *gorm.DB
}

func NewProjectMemberRepo(db *gorm.DB) *ProjectMemberRepo {
	return &ProjectMemberRepo{db}
}

// Add inserts a new membership row.
func (r *ProjectMemberRepo) Add(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// FindByProject returns the membership rows for one project in insertion
// order.
func (r *ProjectMemberRepo) FindByProject(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.Where("project_id = ?", projectID).Order("id").Find(&members).Error
	return members, err
}

// Exists reports whether the user is already a member of the project.
func (r *ProjectMemberRepo) Exists(userID, projectID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}
