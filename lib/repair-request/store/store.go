package repairrequeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equip-repair-backend/models"
	repairapimodels "equip-repair-backend/models/api/repair"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RepairRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.RepairRequest, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.RepairRequest, err error)
	Update(id string, updMap map[string]interface{}) error
	FindPendingByEquipment(equipmentID string) (rec *dbmodels.RepairRequest, err error)
	List(filter repairapimodels.RepairRequestFilter) (list []dbmodels.RepairRequest, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RepairRequest) (id string, err error) {
	err = i.db.
		Omit("Equipment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) getByID(tx *gorm.DB, id string) (*dbmodels.RepairRequest, error) {
	rec := dbmodels.RepairRequest{}
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

func (i impl) GetByID(id string) (*dbmodels.RepairRequest, error) {
	return i.getByID(i.db, id)
}

func (i impl) GetByIDForUpdate(id string) (*dbmodels.RepairRequest, error) {
	return i.getByID(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.RepairRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) FindPendingByEquipment(equipmentID string) (*dbmodels.RepairRequest, error) {
	rec := dbmodels.RepairRequest{}
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

func (i impl) List(filter repairapimodels.RepairRequestFilter) (list []dbmodels.RepairRequest, rowCount int64, err error) {
	list = []dbmodels.RepairRequest{}
	tx := i.db.Model(&dbmodels.RepairRequest{})
	if filter.EquipmentID != "" {
		tx = tx.Where("equipment_id = ?", filter.EquipmentID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.Pagination.Page, filter.Pagination.Limit
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * limit).Limit(limit)
	}
	err = tx.
		Order("created_at DESC").
		Preload("Equipment").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
