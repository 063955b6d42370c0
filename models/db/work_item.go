package dbmodels

import (
	"time"

	"equip-repair-backend/models"
)

// WorkItem is a pending/completed task of one user pointing at a ballot.
// At most one pending item exists per (user, ref_type, ref_id, task_type).
type WorkItem struct {
	BaseModel
	UserID      string `gorm:"type:varchar(36);index;uniqueIndex:idx_work_item_ref,where:status = 'pending'"`
	User        *User
	RefType     models.BallotType `gorm:"type:varchar(100);uniqueIndex:idx_work_item_ref,where:status = 'pending'"`
	RefID       string            `gorm:"type:varchar(36);index;uniqueIndex:idx_work_item_ref,where:status = 'pending'"`
	TaskType    models.TaskType   `gorm:"type:varchar(50);uniqueIndex:idx_work_item_ref,where:status = 'pending'"`
	Status      models.WorkItemStatus `gorm:"type:varchar(50)"`
	Description string
	CreatedBy   string `gorm:"type:varchar(36)"`
	CompletedAt *time.Time
}
