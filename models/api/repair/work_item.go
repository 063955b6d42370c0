package repairapimodels

import (
	"time"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type WorkItemView struct {
	ID          string    `json:"id"`
	RefType     string    `json:"ref_type"`
	RefTypeName string    `json:"ref_type_name"`
	RefID       string    `json:"ref_id"`
	TaskType    string    `json:"task_type"`
	TaskName    string    `json:"task_name"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func WorkItemConvert(rec dbmodels.WorkItem) WorkItemView {
	return WorkItemView{
		ID:          rec.ID,
		RefType:     string(rec.RefType),
		RefTypeName: rec.RefType.ToHuman(),
		RefID:       rec.RefID,
		TaskType:    string(rec.TaskType),
		TaskName:    rec.TaskType.ToHuman(),
		Status:      string(rec.Status),
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		CompletedAt: rec.CompletedAt,
	}
}

type WorkItemFilter struct {
	Status string `json:"status"` // pending/completed, empty for all
}

func (f WorkItemFilter) GetStatus() *models.WorkItemStatus {
	switch models.WorkItemStatus(f.Status) {
	case models.WorkItemStatusPending:
		status := models.WorkItemStatusPending
		return &status
	case models.WorkItemStatusCompleted:
		status := models.WorkItemStatusCompleted
		return &status
	}
	return nil
}
