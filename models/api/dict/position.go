package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "equip-repair-backend/models/db"
)

type PositionData struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

func (d PositionData) Validate() error {
	if d.Code == "" {
		return errors.New("position code is required")
	}
	if d.Name == "" {
		return errors.New("position name is required")
	}
	return nil
}

type PositionView struct {
	PositionData
	ID   string `json:"id"`
	Role string `json:"role,omitempty"`
}

func PositionConvert(rec dbmodels.Position) PositionView {
	view := PositionView{
		PositionData: PositionData{
			Code: rec.Code,
			Name: rec.Name,
		},
		ID: rec.ID,
	}
	if rec.DepartmentID != nil {
		view.DepartmentID = *rec.DepartmentID
	}
	if role, ok := rec.Role(); ok {
		view.Role = string(role)
	}
	return view
}
