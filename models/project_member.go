package models

// ProjectMember links a user to a project they take part in.
type ProjectMember struct {
	ID        uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	UserID    uint `json:"user_id" db:"user_id" gorm:"not null;index:idx_project_member_user_id"`
	ProjectID uint `json:"project_id" db:"project_id" gorm:"not null;index:idx_project_member_project_id"`

	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}
