package models

// ProjectTool links a tool to a project that uses it.
type ProjectTool struct {
	ID        uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	ToolID    uint `json:"tool_id" db:"tool_id" gorm:"not null"`
	ProjectID uint `json:"project_id" db:"project_id" gorm:"not null;index:idx_project_tool_project_id"`

	Tool    Tool    `json:"tool,omitempty" gorm:"foreignKey:ToolID;references:ID"`
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}
