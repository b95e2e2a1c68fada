package database_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/student-directory-backend/database"
	"github.com/rpupo63/student-directory-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDatabase opens a fresh in-memory store with the full schema.
func newTestDatabase(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	d := database.New(db)
	require.NoError(t, d.Migrate())
	return d
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func uintPtr(u uint) *uint    { return &u }

// createUser inserts a user with the given profile fields.
func createUser(t *testing.T, d database.Database, username, fullName string, year int, branch string, instituteID *uint) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		FullName:    strPtr(fullName),
		Email:       username + "@example.com",
		Year:        intPtr(year),
		Branch:      strPtr(branch),
		InstituteID: instituteID,
	}
	require.NoError(t, user.SetPassword("secret-pass"))
	require.NoError(t, d.UserRepo().Add(user))
	return user
}

// createSkill inserts a skill by name.
func createSkill(t *testing.T, d database.Database, name string) *models.Skill {
	t.Helper()

	skill := &models.Skill{Name: name}
	require.NoError(t, d.SkillRepo().Add(skill))
	return skill
}

// giveSkill attaches a rated skill to a user.
func giveSkill(t *testing.T, d database.Database, user *models.User, skill *models.Skill, rating int) {
	t.Helper()

	require.NoError(t, d.UserSkillRepo().Add(&models.UserSkill{
		UserID:  user.ID,
		SkillID: skill.ID,
		Rating:  rating,
	}))
}

// createInstitute inserts an institute by name.
func createInstitute(t *testing.T, d database.Database, name string) *models.Institute {
	t.Helper()

	institute := &models.Institute{Name: name}
	require.NoError(t, d.InstituteRepo().Add(institute))
	return institute
}
