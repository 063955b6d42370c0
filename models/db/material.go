package dbmodels

import (
	"github.com/pkg/errors"
)

type Material struct {
	BaseModel
	Code string `gorm:"type:varchar(100);uniqueIndex"`
	Name string `gorm:"type:varchar(255)"`
	Unit string `gorm:"type:varchar(50)"`
	// Specification is the per-unit weight used when computing scrap
	// quantity on quality assessment.
	Specification float64
	Price         float64
}

func (m *Material) Validate() error {
	if m.Code == "" {
		return errors.New("material code is required")
	}
	if m.Name == "" {
		return errors.New("material name is required")
	}
	return nil
}
