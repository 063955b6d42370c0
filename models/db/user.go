package dbmodels

import (
	"fmt"
	"time"

	"equip-repair-backend/models"
)

type User struct {
	BaseModel
	Login      string `gorm:"type:varchar(100);uniqueIndex"`
	Password   string `gorm:"type:varchar(128)"`
	FirstName  string `gorm:"type:varchar(150)"`
	LastName   string `gorm:"type:varchar(150)"`
	Email      string `gorm:"type:varchar(255)"`
	IsActive   bool
	PositionID *string `gorm:"type:varchar(36)"`
	Position   *Position
	LastLogin  time.Time
}

func (u User) GetFullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Role resolves the user's canonical workflow role from the attached
// position, second value is false when the position is missing or its
// code is not mapped.
func (u User) Role() (models.PositionRole, bool) {
	if u.Position == nil {
		return "", false
	}
	return u.Position.Role()
}
