package database

import (
	"errors"
	"strings"

	"github.com/rpupo63/student-directory-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRating is one skill threshold of a student search: the user must
// hold the named skill at Rating >= MinRating.
type SkillRating struct {
	Name      string
	MinRating int
}

// StudentFilter is the declarative specification of a faceted student
// search. Every populated facet is combined with logical AND; the Term
// facet itself matches full name OR any held skill name.
type StudentFilter struct {
	Term         string
	Institutes   []string
	Branches     []string
	Years        []int
	SkillRatings []SkillRating
	ExcludeID    uint
}

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// preloadedForView attaches every association renderUser needs.
func (r *UserRepo) preloadedForView() *gorm.DB {
	return r.db.
		Preload("Institute").
		Preload("Skills.Skill").
		Preload("Memberships.Project")
}

// FindByID returns a user with all view associations preloaded, or
// (nil, nil) if no such user exists.
func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.preloadedForView().First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Get returns the bare user row without associations, or (nil, nil).
// Mutation handlers use it so that saving the row back cannot touch join
// tables.
func (r *UserRepo) Get(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns the user holding username, or (nil, nil) if the
// name is free.
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user holding email, or (nil, nil).
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhone returns the user holding phone, or (nil, nil).
func (r *UserRepo) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user into the database.
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves every column of an existing user. Associations are
// omitted; join rows change only through their own repos.
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// Search runs a faceted student search. The filter is translated into a
// single query: one pass, every facet ANDed together, results
// deduplicated by user id and ordered by id for determinism.
func (r *UserRepo) Search(filter StudentFilter) ([]*models.User, error) {
	q := r.db.Model(&models.User{})

	if filter.ExcludeID != 0 {
		q = q.Where("users.id <> ?", filter.ExcludeID)
	}

	if filter.Term != "" {
		like := "%" + strings.ToLower(filter.Term) + "%"
		// A user matches on their full name or on any skill they hold.
		// The outer joins fan rows out per skill, so dedupe on users.*.
		q = q.
			Joins("LEFT JOIN user_skills ON user_skills.user_id = users.id").
			Joins("LEFT JOIN skills ON skills.id = user_skills.skill_id").
			Where("LOWER(users.full_name) LIKE ? OR LOWER(skills.name) LIKE ?", like, like).
			Distinct("users.*")
	}

	if len(filter.Institutes) > 0 {
		// Inner join drops users with no institute.
		q = q.
			Joins("JOIN institutes ON institutes.id = users.institute_id").
			Where("institutes.name IN ?", filter.Institutes)
	}

	if len(filter.Branches) > 0 {
		q = q.Where("users.branch IN ?", filter.Branches)
	}

	if len(filter.Years) > 0 {
		q = q.Where("users.year IN ?", filter.Years)
	}

	// Conjunction across thresholds: every requested skill must be held
	// at or above its minimum rating.
	for _, sr := range filter.SkillRatings {
		q = q.Where(
			"EXISTS (SELECT 1 FROM user_skills us JOIN skills s ON s.id = us.skill_id WHERE us.user_id = users.id AND s.name = ? AND us.rating >= ?)",
			sr.Name, sr.MinRating,
		)
	}

	var users []*models.User
	err := q.
		Order("users.id").
		Preload("Institute").
		Preload("Skills.Skill").
		Preload("Memberships.Project").
		Find(&users).Error
	return users, err
}

// QuickSearch matches term against full name or email for member pickers.
// Results are capped at limit and exclude excludeID when nonzero.
func (r *UserRepo) QuickSearch(term string, excludeID uint, limit int) ([]*models.User, error) {
	like := "%" + strings.ToLower(term) + "%"
	q := r.db.
		Preload("Institute").
		Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var users []*models.User
	err := q.Order("id").Limit(limit).Find(&users).Error
	return users, err
}

// DistinctBranches returns every distinct non-null branch value.
func (r *UserRepo) DistinctBranches() ([]string, error) {
	var branches []string
	err := r.db.Model(&models.User{}).
		Where("branch IS NOT NULL").
		Distinct().
		Order("branch").
		Pluck("branch", &branches).Error
	return branches, err
}
