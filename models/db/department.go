package dbmodels

import (
	"github.com/pkg/errors"
)

type Department struct {
	BaseModel
	Code string `gorm:"type:varchar(100);uniqueIndex"`
	Name string `gorm:"type:varchar(255)"`
}

func (d *Department) Validate() error {
	if d.Name == "" {
		return errors.New("department name is required")
	}
	return nil
}
