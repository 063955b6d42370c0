package departmentprovider

import (
	log "github.com/sirupsen/logrus"

	"equip-repair-backend/db"
	"equip-repair-backend/lib/dicts/department/store"
	"equip-repair-backend/lib/utils/errs"
	dictapimodels "equip-repair-backend/models/api/dict"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.DepartmentData) (id string, err error)
	Update(id string, request dictapimodels.DepartmentData) error
	Get(id string) (*dictapimodels.DepartmentView, error)
	Delete(id string) error
	List(page, limit int) (list []dictapimodels.DepartmentView, rowCount int64, err error)
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

func (i impl) Create(request dictapimodels.DepartmentData) (string, error) {
	if err := request.Validate(); err != nil {
		return "", errs.Validation("%v", err)
	}
	id, err := i.store.Create(dbmodels.Department{
		Code: request.Code,
		Name: request.Name,
	})
	if err != nil {
		return "", err
	}
	log.
		WithField("department_name", request.Name).
		WithField("rec_id", id).
		Info("department created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DepartmentData) error {
	if err := request.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("department not found")
	}
	return i.store.Update(id, map[string]interface{}{
		"code": request.Code,
		"name": request.Name,
	})
}

func (i impl) Get(id string) (*dictapimodels.DepartmentView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("department not found")
	}
	view := dictapimodels.DepartmentConvert(*rec)
	return &view, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("department not found")
	}
	return i.store.Delete(id)
}

func (i impl) List(page, limit int) ([]dictapimodels.DepartmentView, int64, error) {
	list, rowCount, err := i.store.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dictapimodels.DepartmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.DepartmentConvert(rec))
	}
	return result, rowCount, nil
}
