package models

import "gorm.io/datatypes"

// Project represents a student project with its tool and member links.
// Deleting a project deletes its join rows; users themselves survive.
type Project struct {
	ID          uint            `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Name        string          `json:"name" db:"name" gorm:"type:text;not null"`
	Description *string         `json:"description,omitempty" db:"description" gorm:"type:text"`
	ProjectType *string         `json:"project_type,omitempty" db:"project_type" gorm:"type:text"`
	StartDate   *datatypes.Date `json:"start_date,omitempty" db:"start_date"`
	Status      *string         `json:"status,omitempty" db:"status" gorm:"type:text"`

	Tools   []ProjectTool   `json:"tools,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Members []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
