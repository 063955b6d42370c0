package repairhistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RepairHistory) (id string, err error)
	GetByID(id string) (rec *dbmodels.RepairHistory, err error)
	Update(id string, updMap map[string]interface{}) error
	FindByRequest(requestID string) (rec *dbmodels.RepairHistory, err error)
	FindPendingByEquipment(equipmentID string) (rec *dbmodels.RepairHistory, err error)
	ListByEquipment(equipmentID string) (list []dbmodels.RepairHistory, err error)
	ListAll() (list []dbmodels.RepairHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RepairHistory) (id string, err error) {
	err = i.db.
		Omit("Equipment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RepairHistory, error) {
	rec := dbmodels.RepairHistory{}
	err := i.db.
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.RepairHistory{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) FindByRequest(requestID string) (*dbmodels.RepairHistory, error) {
	rec := dbmodels.RepairHistory{}
	err := i.db.
		Where("repair_request_id = ?", requestID).
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

func (i impl) FindPendingByEquipment(equipmentID string) (*dbmodels.RepairHistory, error) {
	rec := dbmodels.RepairHistory{}
	err := i.db.
		Where("equipment_id = ?", equipmentID).
		Where("status = ?", models.RepairStatusPending).
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

func (i impl) ListByEquipment(equipmentID string) (list []dbmodels.RepairHistory, err error) {
	list = []dbmodels.RepairHistory{}
	err = i.db.
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Preload("Equipment").
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

func (i impl) ListAll() (list []dbmodels.RepairHistory, err error) {
	list = []dbmodels.RepairHistory{}
	err = i.db.
		Order("created_at DESC").
		Preload("Equipment").
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
