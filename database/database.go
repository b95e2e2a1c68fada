package database

import (
	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
)

// Database bundles the per-entity repositories over a shared GORM
// instance. Handlers receive a Database explicitly; there is no package
// level connection.
type Database struct {
	db                *gorm.DB
	userRepo          *UserRepo
	userSkillRepo     *UserSkillRepo
	instituteRepo     *InstituteRepo
	skillRepo         *SkillRepo
	toolRepo          *ToolRepo
	projectRepo       *ProjectRepo
	projectMemberRepo *ProjectMemberRepo
	projectToolRepo   *ProjectToolRepo
}

// New initializes a Database with each repository using a shared GORM
// database instance.
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		userRepo:          NewUserRepo(db),
		userSkillRepo:     NewUserSkillRepo(db),
		instituteRepo:     NewInstituteRepo(db),
		skillRepo:         NewSkillRepo(db),
		toolRepo:          NewToolRepo(db),
		projectRepo:       NewProjectRepo(db),
		projectMemberRepo: NewProjectMemberRepo(db),
		projectToolRepo:   NewProjectToolRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) UserSkillRepo() *UserSkillRepo {
	return d.userSkillRepo
}

func (d Database) InstituteRepo() *InstituteRepo {
	return d.instituteRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ToolRepo() *ToolRepo {
	return d.toolRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectMemberRepo() *ProjectMemberRepo {
	return d.projectMemberRepo
}

func (d Database) ProjectToolRepo() *ProjectToolRepo {
	return d.projectToolRepo
}

// Transaction runs fn against a transactional Database. If fn returns an
// error every write made through it is rolled back, so a failing handler
// leaves prior state unchanged.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate creates or updates the schema for every model.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(models.All()...)
}
