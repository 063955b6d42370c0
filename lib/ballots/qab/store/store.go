package qabstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.QualityAssessmentBallot) (id string, err error)
	GetByID(id string) (rec *dbmodels.QualityAssessmentBallot, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.QualityAssessmentBallot, err error)
	Update(id string, updMap map[string]interface{}) error
	ReplaceItems(ballotID string, items []dbmodels.QualityAssessmentItem) error
	FindByRequest(requestID string) (rec *dbmodels.QualityAssessmentBallot, err error)
	FindOpenByEquipment(equipmentID string) (rec *dbmodels.QualityAssessmentBallot, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.QualityAssessmentBallot) (id string, err error) {
	err = i.db.
		Omit("Equipment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) getByID(tx *gorm.DB, id string) (*dbmodels.QualityAssessmentBallot, error) {
	rec := dbmodels.QualityAssessmentBallot{}
	err := tx.
		Where("id = ?", id).
		Preload("Equipment").
		Preload("Items").
		Preload("Items.Material").
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

func (i impl) GetByID(id string) (*dbmodels.QualityAssessmentBallot, error) {
	return i.getByID(i.db, id)
}

func (i impl) GetByIDForUpdate(id string) (*dbmodels.QualityAssessmentBallot, error) {
	return i.getByID(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.QualityAssessmentBallot{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ReplaceItems(ballotID string, items []dbmodels.QualityAssessmentItem) error {
	err := i.db.
		Where("ballot_id = ?", ballotID).
		Delete(&dbmodels.QualityAssessmentItem{}).
		Error
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for idx := range items {
		items[idx].BallotID = ballotID
	}
	return i.db.Omit("Material").Create(&items).Error
}

func (i impl) FindByRequest(requestID string) (*dbmodels.QualityAssessmentBallot, error) {
	rec := dbmodels.QualityAssessmentBallot{}
	err := i.db.
		Where("repair_request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Items").
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

func (i impl) FindOpenByEquipment(equipmentID string) (*dbmodels.QualityAssessmentBallot, error) {
	rec := dbmodels.QualityAssessmentBallot{}
	err := i.db.
		Where("equipment_id = ?", equipmentID).
		Where("status IN ?", []models.AssessmentStatus{
			models.AssessmentStatusPending,
			models.AssessmentStatusInProgress,
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
