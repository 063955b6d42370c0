package asbstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AssignmentBallot) (id string, err error)
	GetByID(id string) (rec *dbmodels.AssignmentBallot, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.AssignmentBallot, err error)
	Update(id string, updMap map[string]interface{}) error
	FindByRequest(requestID string) (rec *dbmodels.AssignmentBallot, err error)
	FindOpenByRequest(requestID string) (rec *dbmodels.AssignmentBallot, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AssignmentBallot) (id string, err error) {
	err = i.db.
		Omit("Equipment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) getByID(tx *gorm.DB, id string) (*dbmodels.AssignmentBallot, error) {
	rec := dbmodels.AssignmentBallot{}
	err := tx.
		Where("id = ?", id).
		Preload("Equipment").
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

func (i impl) GetByID(id string) (*dbmodels.AssignmentBallot, error) {
	return i.getByID(i.db, id)
}

func (i impl) GetByIDForUpdate(id string) (*dbmodels.AssignmentBallot, error) {
	return i.getByID(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.AssignmentBallot{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// FindByRequest returns the latest assignment ballot of the request, a
// replacement created after a rejection shadows its predecessor.
func (i impl) FindByRequest(requestID string) (*dbmodels.AssignmentBallot, error) {
	rec := dbmodels.AssignmentBallot{}
	err := i.db.
		Where("repair_request_id = ?", requestID).
		Order("created_at DESC").
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

func (i impl) FindOpenByRequest(requestID string) (*dbmodels.AssignmentBallot, error) {
	rec := dbmodels.AssignmentBallot{}
	err := i.db.
		Where("repair_request_id = ?", requestID).
		Where("status IN ?", []models.AssignStatus{
			models.AssignStatusPending,
			models.AssignStatusInProgress,
		}).
		Order("created_at ASC").
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
