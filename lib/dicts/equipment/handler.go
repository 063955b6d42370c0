package equipmentprovider

import (
	log "github.com/sirupsen/logrus"

	"equip-repair-backend/db"
	"equip-repair-backend/lib/dicts/equipment/store"
	"equip-repair-backend/lib/utils/errs"
	"equip-repair-backend/models"
	dictapimodels "equip-repair-backend/models/api/dict"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.EquipmentData) (id string, err error)
	Update(id string, request dictapimodels.EquipmentData) error
	Get(id string) (*dictapimodels.EquipmentView, error)
	Delete(id string) error
	List(page, limit int) (list []dictapimodels.EquipmentView, rowCount int64, err error)
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

func (i impl) Create(request dictapimodels.EquipmentData) (string, error) {
	if err := request.Validate(); err != nil {
		return "", errs.Validation("%v", err)
	}
	rec := dbmodels.Equipment{
		Code:         request.Code,
		Name:         request.Name,
		Model:        request.Model,
		SerialNumber: request.SerialNumber,
		Status:       models.EquipmentStatusActive,
	}
	if request.DepartmentID != "" {
		rec.DepartmentID = &request.DepartmentID
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("equipment_code", rec.Code).
		WithField("rec_id", id).
		Info("equipment created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.EquipmentData) error {
	if err := request.Validate(); err != nil {
		return errs.Validation("%v", err)
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("equipment not found")
	}
	updMap := map[string]interface{}{
		"code":          request.Code,
		"name":          request.Name,
		"model":         request.Model,
		"serial_number": request.SerialNumber,
	}
	if request.DepartmentID != "" {
		updMap["department_id"] = request.DepartmentID
	}
	return i.store.Update(id, updMap)
}

func (i impl) Get(id string) (*dictapimodels.EquipmentView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("equipment not found")
	}
	view := dictapimodels.EquipmentConvert(*rec)
	return &view, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("equipment not found")
	}
	if rec.Status == models.EquipmentStatusUnderRepair {
		return errs.Conflict("equipment under repair can not be deleted")
	}
	return i.store.Delete(id)
}

func (i impl) List(page, limit int) ([]dictapimodels.EquipmentView, int64, error) {
	list, rowCount, err := i.store.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dictapimodels.EquipmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.EquipmentConvert(rec))
	}
	return result, rowCount, nil
}
