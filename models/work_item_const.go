package models

type WorkItemStatus string

const (
	WorkItemStatusPending   WorkItemStatus = "pending"
	WorkItemStatusCompleted WorkItemStatus = "completed"
)

// TaskType describes what action a work item expects from its assignee.
type TaskType string

const (
	TaskTypeSign          TaskType = "sign"
	TaskTypeApproveAdjust TaskType = "approve_adjust"
	TaskTypeDelegate      TaskType = "delegate"
	TaskTypeCreateBallot  TaskType = "create_ballot"
	TaskTypeUpdateItems   TaskType = "update_items"
)

var taskTypeHumanName = map[TaskType]string{
	TaskTypeSign:          "Ký biên bản",
	TaskTypeApproveAdjust: "Duyệt và điều chỉnh vật tư",
	TaskTypeDelegate:      "Phân công thực hiện",
	TaskTypeCreateBallot:  "Lập biên bản",
	TaskTypeUpdateItems:   "Cập nhật hạng mục",
}

func (t TaskType) ToHuman() string {
	if human, exist := taskTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}
