package msbstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equip-repair-backend/models"
	repairapimodels "equip-repair-backend/models/api/repair"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.MaterialSupplyBallot) (id string, err error)
	GetByID(id string) (rec *dbmodels.MaterialSupplyBallot, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.MaterialSupplyBallot, err error)
	Update(id string, updMap map[string]interface{}) error
	UpdateDetail(detailID string, updMap map[string]interface{}) error
	ReplaceDetails(ballotID string, details []dbmodels.MaterialSupplyDetail) error
	Delete(id string) error
	List(filter repairapimodels.SupplyBallotFilter) (list []dbmodels.MaterialSupplyBallot, rowCount int64, err error)
	ListByRequest(requestID string) (list []dbmodels.MaterialSupplyBallot, err error)
	// FirstOfRequest returns the earliest-created non-rejected ballot of
	// the request. The first ballot fixes the approved material budget,
	// callers must not reimplement this ordering.
	FirstOfRequest(requestID string) (rec *dbmodels.MaterialSupplyBallot, err error)
	ListOpenByEquipment(equipmentID string) (list []dbmodels.MaterialSupplyBallot, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.MaterialSupplyBallot) (id string, err error) {
	err = i.db.
		Omit("Equipment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) getByID(tx *gorm.DB, id string) (*dbmodels.MaterialSupplyBallot, error) {
	rec := dbmodels.MaterialSupplyBallot{}
	err := tx.
		Where("id = ?", id).
		Preload("Equipment").
		Preload("Details").
		Preload("Details.Material").
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

func (i impl) GetByID(id string) (*dbmodels.MaterialSupplyBallot, error) {
	return i.getByID(i.db, id)
}

// GetByIDForUpdate takes a row lock so concurrent signing attempts on
// the same ballot serialize, must run inside a transaction.
func (i impl) GetByIDForUpdate(id string) (*dbmodels.MaterialSupplyBallot, error) {
	return i.getByID(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.MaterialSupplyBallot{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateDetail(detailID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.MaterialSupplyDetail{}).
		Where("id = ?", detailID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ReplaceDetails(ballotID string, details []dbmodels.MaterialSupplyDetail) error {
	err := i.db.
		Where("ballot_id = ?", ballotID).
		Delete(&dbmodels.MaterialSupplyDetail{}).
		Error
	if err != nil {
		return err
	}
	for idx := range details {
		details[idx].BallotID = ballotID
	}
	return i.db.Omit("Material").Create(&details).Error
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("ballot_id = ?", id).
		Delete(&dbmodels.MaterialSupplyDetail{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.MaterialSupplyBallot{}).
		Error
}

func (i impl) List(filter repairapimodels.SupplyBallotFilter) (list []dbmodels.MaterialSupplyBallot, rowCount int64, err error) {
	list = []dbmodels.MaterialSupplyBallot{}
	tx := i.db.Model(&dbmodels.MaterialSupplyBallot{})
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
		Preload("Details").
		Preload("Details.Material").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.MaterialSupplyBallot, err error) {
	list = []dbmodels.MaterialSupplyBallot{}
	err = i.db.
		Where("repair_request_id = ?", requestID).
		Where("status <> ?", models.SupplyStatusRejected).
		Order("created_at ASC").
		Preload("Details").
		Preload("Details.Material").
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

func (i impl) FirstOfRequest(requestID string) (*dbmodels.MaterialSupplyBallot, error) {
	rec := dbmodels.MaterialSupplyBallot{}
	err := i.db.
		Where("repair_request_id = ?", requestID).
		Where("status <> ?", models.SupplyStatusRejected).
		Order("created_at ASC").
		Preload("Details").
		Preload("Details.Material").
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

func (i impl) ListOpenByEquipment(equipmentID string) (list []dbmodels.MaterialSupplyBallot, err error) {
	list = []dbmodels.MaterialSupplyBallot{}
	err = i.db.
		Where("equipment_id = ?", equipmentID).
		Where("status IN ?", []models.SupplyStatus{
			models.SupplyStatusPending,
			models.SupplyStatusInProgress,
		}).
		Order("created_at ASC").
		Preload("Details").
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
