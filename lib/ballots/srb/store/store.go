package srbstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.SettlementRepairBallot) (id string, err error)
	GetByID(id string) (rec *dbmodels.SettlementRepairBallot, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.SettlementRepairBallot, err error)
	Update(id string, updMap map[string]interface{}) error
	FindByRequest(requestID string) (rec *dbmodels.SettlementRepairBallot, err error)
	FindOpenByEquipment(equipmentID string) (rec *dbmodels.SettlementRepairBallot, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SettlementRepairBallot) (id string, err error) {
	err = i.db.
		Omit("Equipment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) getByID(tx *gorm.DB, id string) (*dbmodels.SettlementRepairBallot, error) {
	rec := dbmodels.SettlementRepairBallot{}
	err := tx.
		Where("id = ?", id).
		Preload("Equipment").
		Preload("Lines").
		Preload("Lines.Material").
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

func (i impl) GetByID(id string) (*dbmodels.SettlementRepairBallot, error) {
	return i.getByID(i.db, id)
}

func (i impl) GetByIDForUpdate(id string) (*dbmodels.SettlementRepairBallot, error) {
	return i.getByID(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.SettlementRepairBallot{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) FindByRequest(requestID string) (*dbmodels.SettlementRepairBallot, error) {
	rec := dbmodels.SettlementRepairBallot{}
	err := i.db.
		Where("repair_request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Lines").
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

func (i impl) FindOpenByEquipment(equipmentID string) (*dbmodels.SettlementRepairBallot, error) {
	rec := dbmodels.SettlementRepairBallot{}
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
