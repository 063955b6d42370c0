package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.User) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	Delete(userID string) error
	GetByID(userID string) (rec *dbmodels.User, err error)
	FindByLogin(login string) (rec *dbmodels.User, err error)
	GetList(page, limit int) (userList []dbmodels.User, err error)
	ListByRole(role models.PositionRole) (userList []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (string, error) {
	err := i.db.
		Omit("Position").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(userID string) error {
	return i.db.
		Where("id = ?", userID).
		Delete(&dbmodels.User{}).
		Error
}

func (i impl) GetByID(userID string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
		Preload("Position").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByLogin(login string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("login = ?", login).
		Preload("Position").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetList(page, limit int) (userList []dbmodels.User, err error) {
	tx := i.db.Model(dbmodels.User{})
	setPage(tx, page, limit)
	err = tx.
		Preload(clause.Associations).
		Find(&userList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userList, nil
}

func (i impl) ListByRole(role models.PositionRole) (userList []dbmodels.User, err error) {
	codes := models.PositionCodes(role)
	err = i.db.Model(dbmodels.User{}).
		Joins("JOIN positions ON positions.id = users.position_id").
		Where("positions.code IN ?", codes).
		Where("users.is_active = ?", true).
		Preload("Position").
		Find(&userList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userList, nil
}

func setPage(tx *gorm.DB, page, limit int) {
	if limit <= 0 {
		return
	}
	offset := (page - 1) * limit
	if offset > 0 {
		tx.Offset(offset)
	}
	tx.Limit(limit)
}
