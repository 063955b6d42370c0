package auditstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.BallotAudit) (id string, err error)
	ListByRef(refType models.BallotType, refID string) (list []dbmodels.BallotAudit, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.BallotAudit) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByRef(refType models.BallotType, refID string) (list []dbmodels.BallotAudit, err error) {
	list = []dbmodels.BallotAudit{}
	err = i.db.
		Where("ref_type = ?", refType).
		Where("ref_id = ?", refID).
		Order("created_at ASC").
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
