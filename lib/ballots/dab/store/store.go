package dabstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DetailAppraisalBallot) (id string, err error)
	GetByID(id string) (rec *dbmodels.DetailAppraisalBallot, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.DetailAppraisalBallot, err error)
	Update(id string, updMap map[string]interface{}) error
	FindByRequest(requestID string) (rec *dbmodels.DetailAppraisalBallot, err error)
	ReplaceItems(ballotID string, items []dbmodels.DetailAppraisalItem) error
	UpsertItems(ballotID string, items []dbmodels.DetailAppraisalItem) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DetailAppraisalBallot) (id string, err error) {
	err = i.db.
		Omit("Equipment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) getByID(tx *gorm.DB, id string) (*dbmodels.DetailAppraisalBallot, error) {
	rec := dbmodels.DetailAppraisalBallot{}
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

func (i impl) GetByID(id string) (*dbmodels.DetailAppraisalBallot, error) {
	return i.getByID(i.db, id)
}

func (i impl) GetByIDForUpdate(id string) (*dbmodels.DetailAppraisalBallot, error) {
	return i.getByID(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.DetailAppraisalBallot{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) FindByRequest(requestID string) (*dbmodels.DetailAppraisalBallot, error) {
	rec := dbmodels.DetailAppraisalBallot{}
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

func (i impl) ReplaceItems(ballotID string, items []dbmodels.DetailAppraisalItem) error {
	err := i.db.
		Where("ballot_id = ?", ballotID).
		Delete(&dbmodels.DetailAppraisalItem{}).
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

// UpsertItems adds lines for materials not present yet and keeps
// existing lines untouched, used when a follow-up supply ballot extends
// the shared appraisal.
func (i impl) UpsertItems(ballotID string, items []dbmodels.DetailAppraisalItem) error {
	existing := []dbmodels.DetailAppraisalItem{}
	err := i.db.
		Where("ballot_id = ?", ballotID).
		Find(&existing).
		Error
	if err != nil {
		return err
	}
	known := map[string]bool{}
	for _, item := range existing {
		known[item.MaterialID] = true
	}
	toAdd := make([]dbmodels.DetailAppraisalItem, 0, len(items))
	for _, item := range items {
		if known[item.MaterialID] {
			continue
		}
		item.BallotID = ballotID
		toAdd = append(toAdd, item)
	}
	if len(toAdd) == 0 {
		return nil
	}
	return i.db.Omit("Material").Create(&toAdd).Error
}
