// Package models holds the persisted entities of the student directory:
// users, institutes, skills, tools, projects, and the join rows tying
// them together.
package models

// All returns every persisted model in dependency order, suitable for
// gorm AutoMigrate.
func All() []any {
	return []any{
		&Institute{},
		&Skill{},
		&Tool{},
		&User{},
		&UserSkill{},
		&Project{},
		&ProjectMember{},
		&ProjectTool{},
	}
}
