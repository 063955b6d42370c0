package workitemhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	usersstore "equip-repair-backend/lib/users/store"
	workitemstore "equip-repair-backend/lib/workitem/store"
	"equip-repair-backend/models"
	repairapimodels "equip-repair-backend/models/api/repair"
	dbmodels "equip-repair-backend/models/db"
)

// Provider is the single interface through which work items are
// created and retired. Ballot handlers never touch the table directly,
// that keeps fan-out and fan-in consistent with the cascade.
type Provider interface {
	Create(data WorkItemData) (id string, err error)
	FanOutToRole(role models.PositionRole, data WorkItemData) error
	CompleteByRef(userID string, refType models.BallotType, refID string, taskType models.TaskType) error
	DeleteForRef(refType models.BallotType, refID string, taskType *models.TaskType) error
	FindAllUsersByRef(refType models.BallotType, refID string) (userIDs []string, err error)
	ListMy(userID string, status *models.WorkItemStatus) (list []repairapimodels.WorkItemView, err error)
}

// WorkItemData is the creation payload. UserID is empty on fan-out.
type WorkItemData struct {
	UserID      string
	RefType     models.BallotType
	RefID       string
	TaskType    models.TaskType
	Description string
	CreatedBy   string
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      workitemstore.NewInstance(db.DB),
		usersStore: usersstore.NewInstance(db.DB),
	}
}

func NewInstanceWithTx(tx *gorm.DB) Provider {
	return impl{
		store:      workitemstore.NewInstance(tx),
		usersStore: usersstore.NewInstance(tx),
	}
}

type impl struct {
	store      workitemstore.Provider
	usersStore usersstore.Provider
}

func (i impl) getLogger(refType models.BallotType, refID string) *log.Entry {
	return log.
		WithField("ref_type", refType).
		WithField("ref_id", refID)
}

// Create is idempotent per (user, ref_type, ref_id, task_type): an
// existing pending item is returned instead of a duplicate.
func (i impl) Create(data WorkItemData) (id string, err error) {
	existing, err := i.store.FindPending(data.UserID, data.RefType, data.RefID, data.TaskType)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	rec := dbmodels.WorkItem{
		UserID:      data.UserID,
		RefType:     data.RefType,
		RefID:       data.RefID,
		TaskType:    data.TaskType,
		Status:      models.WorkItemStatusPending,
		Description: data.Description,
		CreatedBy:   data.CreatedBy,
	}
	return i.store.Create(rec)
}

// FanOutToRole creates one pending item for every active user holding
// the role.
func (i impl) FanOutToRole(role models.PositionRole, data WorkItemData) error {
	users, err := i.usersStore.ListByRole(role)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		i.getLogger(data.RefType, data.RefID).
			WithField("role", role).
			Warn("no active users hold the role, work item fan-out skipped")
		return nil
	}
	for _, user := range users {
		data.UserID = user.ID
		if _, err = i.Create(data); err != nil {
			return err
		}
	}
	return nil
}

// CompleteByRef closes the actor's own pending item. Missing item is a
// no-op, not an error.
func (i impl) CompleteByRef(userID string, refType models.BallotType, refID string, taskType models.TaskType) error {
	rec, err := i.store.FindPending(userID, refType, refID, taskType)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	return i.store.Complete(rec.ID)
}

func (i impl) DeleteForRef(refType models.BallotType, refID string, taskType *models.TaskType) error {
	return i.store.DeleteByRef(refType, refID, taskType)
}

func (i impl) FindAllUsersByRef(refType models.BallotType, refID string) (userIDs []string, err error) {
	list, err := i.store.ListByRef(refType, refID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	userIDs = make([]string, 0, len(list))
	for _, rec := range list {
		if !seen[rec.UserID] {
			seen[rec.UserID] = true
			userIDs = append(userIDs, rec.UserID)
		}
	}
	return userIDs, nil
}

func (i impl) ListMy(userID string, status *models.WorkItemStatus) ([]repairapimodels.WorkItemView, error) {
	list, err := i.store.ListByUser(userID, status)
	if err != nil {
		return nil, err
	}
	result := make([]repairapimodels.WorkItemView, 0, len(list))
	for _, rec := range list {
		result = append(result, repairapimodels.WorkItemConvert(rec))
	}
	return result, nil
}
