package usersapimodels

import (
	"github.com/pkg/errors"

	dbmodels "equip-repair-backend/models/db"
)

type UserView struct {
	ID           string `json:"id"`
	Login        string `json:"login"`
	FullName     string `json:"full_name"`
	Email        string `json:"email,omitempty"`
	IsActive     bool   `json:"is_active"`
	PositionID   string `json:"position_id,omitempty"`
	PositionName string `json:"position_name,omitempty"`
	Role         string `json:"role,omitempty"`
}

func UserConvert(rec dbmodels.User) UserView {
	view := UserView{
		ID:       rec.ID,
		Login:    rec.Login,
		FullName: rec.GetFullName(),
		Email:    rec.Email,
		IsActive: rec.IsActive,
	}
	if rec.PositionID != nil {
		view.PositionID = *rec.PositionID
	}
	if rec.Position != nil {
		view.PositionName = rec.Position.Name
	}
	if role, ok := rec.Role(); ok {
		view.Role = string(role)
	}
	return view
}

type UserData struct {
	Login      string `json:"login"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	PositionID string `json:"position_id"`
}

func (d UserData) Validate() error {
	if d.Login == "" {
		return errors.New("login is required")
	}
	if d.Password == "" {
		return errors.New("password is required")
	}
	if d.LastName == "" {
		return errors.New("last name is required")
	}
	return nil
}
