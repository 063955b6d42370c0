package materialprovider

import (
	log "github.com/sirupsen/logrus"

	"equip-repair-backend/db"
	"equip-repair-backend/lib/dicts/material/store"
	"equip-repair-backend/lib/utils/errs"
	dictapimodels "equip-repair-backend/models/api/dict"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.MaterialData) (id string, err error)
	Update(id string, request dictapimodels.MaterialData) error
	Get(id string) (*dictapimodels.MaterialView, error)
	Delete(id string) error
	List(page, limit int) (list []dictapimodels.MaterialView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: store.NewInstance(db.DB),
	}
}

type impl struct {
	store store.Provider
}

func (i impl) Create(request dictapimodels.MaterialData) (string, error) {
	if err := request.Validate(); err != nil {
		return "", errs.Validation("%v", err)
	}
	id, err := i.store.Create(dbmodels.Material{
		Code:          request.Code,
		Name:          request.Name,
		Unit:          request.Unit,
		Specification: request.Specification,
		Price:         request.Price,
	})
	if err != nil {
		return "", err
	}
	log.
		WithField("material_code", request.Code).
		WithField("rec_id", id).
		Info("material created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.MaterialData) error {
	if err := request.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("material not found")
	}
	return i.store.Update(id, map[string]interface{}{
		"code":          request.Code,
		"name":          request.Name,
		"unit":          request.Unit,
		"specification": request.Specification,
		"price":         request.Price,
	})
}

func (i impl) Get(id string) (*dictapimodels.MaterialView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("material not found")
	}
	view := dictapimodels.MaterialConvert(*rec)
	return &view, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("material not found")
	}
	return i.store.Delete(id)
}

func (i impl) List(page, limit int) ([]dictapimodels.MaterialView, int64, error) {
	list, rowCount, err := i.store.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dictapimodels.MaterialView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.MaterialConvert(rec))
	}
	return result, rowCount, nil
}
