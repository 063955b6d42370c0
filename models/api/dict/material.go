package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "equip-repair-backend/models/db"
)

type MaterialData struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Specification float64 `json:"specification"`
	Price         float64 `json:"price"`
}

func (d MaterialData) Validate() error {
	if d.Code == "" {
		return errors.New("material code is required")
	}
	if d.Name == "" {
		return errors.New("material name is required")
	}
	if d.Specification < 0 || d.Price < 0 {
		return errors.New("specification and price must not be negative")
	}
	return nil
}

type MaterialView struct {
	MaterialData
	ID string `json:"id"`
}

func MaterialConvert(rec dbmodels.Material) MaterialView {
	return MaterialView{
		MaterialData: MaterialData{
			Code:          rec.Code,
			Name:          rec.Name,
			Unit:          rec.Unit,
			Specification: rec.Specification,
			Price:         rec.Price,
		},
		ID: rec.ID,
	}
}
