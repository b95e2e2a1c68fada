package database

import (
	"errors"

	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
)

type InstituteRepo struct {
	db *gorm.DB
}

func NewInstituteRepo(db *gorm.DB) *InstituteRepo {
	return &InstituteRepo{db}
}

// FindAll returns all institutes ordered by id.
func (r *InstituteRepo) FindAll() ([]*models.Institute, error) {
	var institutes []*models.Institute
	err := r.db.Order("id").Find(&institutes).Error
	return institutes, err
}

// FindByName returns the institute with the exact name, or (nil, nil).
func (r *InstituteRepo) FindByName(name string) (*models.Institute, error) {
	var institute models.Institute
	err := r.db.Where("name = ?", name).First(&institute).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &institute, nil
}

// Add inserts a new institute.
func (r *InstituteRepo) Add(institute *models.Institute) error {
	return r.db.Create(institute).Error
}

// Count returns the number of stored institutes.
func (r *InstituteRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Institute{}).Count(&count).Error
	return count, err
}
