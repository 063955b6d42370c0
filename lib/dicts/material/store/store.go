package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Material) (id string, err error)
	GetByID(id string) (rec *dbmodels.Material, err error)
	GetByIDs(ids []string) (list []dbmodels.Material, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(page, limit int) (list []dbmodels.Material, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Material) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Material, error) {
	rec := dbmodels.Material{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetByIDs(ids []string) (list []dbmodels.Material, err error) {
	list = []dbmodels.Material{}
	err = i.db.
		Where("id IN ?", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Material{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Material{}).
		Error
}

func (i impl) List(page, limit int) (list []dbmodels.Material, rowCount int64, err error) {
	list = []dbmodels.Material{}
	tx := i.db.Model(&dbmodels.Material{})
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * limit).Limit(limit)
	}
	err = tx.
		Order("code ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
