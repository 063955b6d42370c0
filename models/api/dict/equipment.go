package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "equip-repair-backend/models/db"
)

type EquipmentData struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	DepartmentID string `json:"department_id"`
}

func (d EquipmentData) Validate() error {
	if d.Code == "" {
		return errors.New("equipment code is required")
	}
	if d.Name == "" {
		return errors.New("equipment name is required")
	}
	return nil
}

type EquipmentView struct {
	EquipmentData
	ID             string `json:"id"`
	Status         string `json:"status"`
	DepartmentName string `json:"department_name,omitempty"`
}

func EquipmentConvert(rec dbmodels.Equipment) EquipmentView {
	view := EquipmentView{
		EquipmentData: EquipmentData{
			Code:         rec.Code,
			Name:         rec.Name,
			Model:        rec.Model,
			SerialNumber: rec.SerialNumber,
		},
		ID:     rec.ID,
		Status: string(rec.Status),
	}
	if rec.DepartmentID != nil {
		view.DepartmentID = *rec.DepartmentID
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	return view
}
