package dbmodels

import (
	"equip-repair-backend/models"

	"github.com/pkg/errors"
)

type Equipment struct {
	BaseModel
	Code         string `gorm:"type:varchar(100);uniqueIndex"`
	Name         string `gorm:"type:varchar(255)"`
	Model        string `gorm:"type:varchar(255)"`
	SerialNumber string `gorm:"type:varchar(100)"`
	DepartmentID *string `gorm:"type:varchar(36)"`
	Department   *Department
	Status       models.EquipmentStatus `gorm:"type:varchar(50)"`
}

func (e *Equipment) Validate() error {
	if e.Code == "" {
		return errors.New("equipment code is required")
	}
	if e.Name == "" {
		return errors.New("equipment name is required")
	}
	return nil
}
