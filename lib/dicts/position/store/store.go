package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Position) (id string, err error)
	GetByID(id string) (rec *dbmodels.Position, err error)
	FindByCode(code string) (rec *dbmodels.Position, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(page, limit int) (list []dbmodels.Position, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Position) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Omit("Department").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Position, error) {
	rec := dbmodels.Position{}
	err := i.db.
		Where("id = ?", id).
		Preload("Department").
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

func (i impl) FindByCode(code string) (*dbmodels.Position, error) {
	rec := dbmodels.Position{}
	err := i.db.
		Where("code = ?", code).
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
		Model(&dbmodels.Position{}).
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
		Delete(&dbmodels.Position{}).
		Error
}

func (i impl) List(page, limit int) (list []dbmodels.Position, rowCount int64, err error) {
	list = []dbmodels.Position{}
	tx := i.db.Model(&dbmodels.Position{})
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
		Preload("Department").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
