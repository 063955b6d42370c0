package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "equip-repair-backend/models/db"
)

type DepartmentData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (d DepartmentData) Validate() error {
	if d.Name == "" {
		return errors.New("department name is required")
	}
	return nil
}

type DepartmentView struct {
	DepartmentData
	ID string `json:"id"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		DepartmentData: DepartmentData{
			Code: rec.Code,
			Name: rec.Name,
		},
		ID: rec.ID,
	}
}
