package positionprovider

import (
	log "github.com/sirupsen/logrus"

	"equip-repair-backend/db"
	"equip-repair-backend/lib/dicts/position/store"
	"equip-repair-backend/lib/utils/errs"
	dictapimodels "equip-repair-backend/models/api/dict"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.PositionData) (id string, err error)
	Update(id string, request dictapimodels.PositionData) error
	Get(id string) (*dictapimodels.PositionView, error)
	Delete(id string) error
	List(page, limit int) (list []dictapimodels.PositionView, rowCount int64, err error)
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

func (i impl) Create(request dictapimodels.PositionData) (string, error) {
	if err := request.Validate(); err != nil {
		return "", errs.Validation("%v", err)
	}
	existing, err := i.store.FindByCode(request.Code)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errs.Conflict("position code %q is already taken", request.Code)
	}
	rec := dbmodels.Position{
		Code: request.Code,
		Name: request.Name,
	}
	if request.DepartmentID != "" {
		rec.DepartmentID = &request.DepartmentID
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("position_code", rec.Code).
		WithField("rec_id", id).
		Info("position created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.PositionData) error {
	if err := request.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("position not found")
	}
	updMap := map[string]interface{}{
		"code": request.Code,
		"name": request.Name,
	}
	if request.DepartmentID != "" {
		updMap["department_id"] = request.DepartmentID
	}
	return i.store.Update(id, updMap)
}

func (i impl) Get(id string) (*dictapimodels.PositionView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("position not found")
	}
	view := dictapimodels.PositionConvert(*rec)
	return &view, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("position not found")
	}
	return i.store.Delete(id)
}

func (i impl) List(page, limit int) ([]dictapimodels.PositionView, int64, error) {
	list, rowCount, err := i.store.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dictapimodels.PositionView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.PositionConvert(rec))
	}
	return result, rowCount, nil
}
