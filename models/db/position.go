package dbmodels

import (
	"equip-repair-backend/models"

	"github.com/pkg/errors"
)

type Position struct {
	BaseModel
	Code         string `gorm:"type:varchar(100);uniqueIndex"`
	Name         string `gorm:"type:varchar(255)"`
	DepartmentID *string `gorm:"type:varchar(36)"`
	Department   *Department
}

// Role canonicalizes the dictionary code into a workflow role.
func (p Position) Role() (models.PositionRole, bool) {
	return models.ResolvePositionRole(p.Code)
}

func (p *Position) Validate() error {
	if p.Code == "" {
		return errors.New("position code is required")
	}
	if p.Name == "" {
		return errors.New("position name is required")
	}
	return nil
}
