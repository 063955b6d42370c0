package workitemstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkItem) (id string, err error)
	GetByID(id string) (rec *dbmodels.WorkItem, err error)
	FindPending(userID string, refType models.BallotType, refID string, taskType models.TaskType) (rec *dbmodels.WorkItem, err error)
	ListByRef(refType models.BallotType, refID string) (list []dbmodels.WorkItem, err error)
	ListByUser(userID string, status *models.WorkItemStatus) (list []dbmodels.WorkItem, err error)
	Complete(id string) error
	DeleteByRef(refType models.BallotType, refID string, taskType *models.TaskType) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkItem) (id string, err error) {
	err = i.db.
		Omit("User").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.WorkItem, error) {
	rec := dbmodels.WorkItem{}
	err := i.db.
		Where("id = ?", id).
		Preload("User").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindPending(userID string, refType models.BallotType, refID string, taskType models.TaskType) (*dbmodels.WorkItem, error) {
	rec := dbmodels.WorkItem{}
	err := i.db.
		Where("user_id = ?", userID).
		Where("ref_type = ?", refType).
		Where("ref_id = ?", refID).
		Where("task_type = ?", taskType).
		Where("status = ?", models.WorkItemStatusPending).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByRef(refType models.BallotType, refID string) (list []dbmodels.WorkItem, err error) {
	list = []dbmodels.WorkItem{}
	err = i.db.
		Where("ref_type = ?", refType).
		Where("ref_id = ?", refID).
		Order("created_at ASC").
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByUser(userID string, status *models.WorkItemStatus) (list []dbmodels.WorkItem, err error) {
	list = []dbmodels.WorkItem{}
	tx := i.db.
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if status != nil {
		tx = tx.Where("status = ?", *status)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Complete(id string) error {
	now := time.Now()
	err := i.db.
		Model(&dbmodels.WorkItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.WorkItemStatusCompleted,
			"completed_at": &now,
		}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteByRef(refType models.BallotType, refID string, taskType *models.TaskType) error {
	tx := i.db.
		Where("ref_type = ?", refType).
		Where("ref_id = ?", refID)
	if taskType != nil {
		tx = tx.Where("task_type = ?", *taskType)
	}
	err := tx.Delete(&dbmodels.WorkItem{}).Error
	if err != nil {
		return err
	}
	return nil
}
