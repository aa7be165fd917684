package models

// SubTask is a checklist item belonging to a single task.
// Deleting the parent task removes its subtasks.
type SubTask struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TaskID      uint   `json:"task_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Completed   bool   `json:"completed" gorm:"default:false"`
}

// TableName specifies the table name for SubTask Model
func (SubTask) TableName() string {
	return "sub_tasks"
}
