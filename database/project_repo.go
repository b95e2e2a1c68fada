package database

import (
	"errors"
	"strings"

	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// preloadedForView attaches everything renderProject needs: tools, and
// members rendered as full users with their own skills and memberships.
func (r *ProjectRepo) preloadedForView() *gorm.DB {
	return r.db.
		Preload("Tools.Tool").
		Preload("Members.User.Institute").
		Preload("Members.User.Skills.Skill").
		Preload("Members.User.Memberships.Project")
}

// FindByID returns a project with view associations preloaded, or
// (nil, nil) if no such project exists.
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.preloadedForView().First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByName returns the first project with the exact name, or (nil, nil).
func (r *ProjectRepo) FindByName(name string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("name = ?", name).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Search returns projects whose name contains term (all projects when
// term is empty), newest start date first, preloaded for rendering.
func (r *ProjectRepo) Search(term string) ([]*models.Project, error) {
	q := r.preloadedForView()
	if term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ?", like)
	}

	var projects []*models.Project
	err := q.Order("start_date DESC").Find(&projects).Error
	return projects, err
}

// SearchRefs returns up to limit bare {id, name} projects matching term,
// for pickers that do not need the rendered view.
func (r *ProjectRepo) SearchRefs(term string, limit int) ([]*models.Project, error) {
	like := "%" + strings.ToLower(term) + "%"
	var projects []*models.Project
	err := r.db.
		Select("id", "name").
		Where("LOWER(name) LIKE ?", like).
		Order("id").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// Add inserts a new project.
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update saves every column of an existing project. Associations are
// omitted; join rows change only through their own repos.
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete removes a project by id; its member and tool rows cascade.
func (r *ProjectRepo) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}
