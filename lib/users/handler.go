package usershandler

import (
	"golang.org/x/crypto/bcrypt"

	"equip-repair-backend/db"
	usersstore "equip-repair-backend/lib/users/store"
	"equip-repair-backend/lib/utils/errs"
	usersapimodels "equip-repair-backend/models/api/users"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	Create(data usersapimodels.UserData) (id string, err error)
	Update(id string, data usersapimodels.UserData) error
	Delete(id string) error
	GetByID(id string) (*usersapimodels.UserView, error)
	List(page, limit int) ([]usersapimodels.UserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Create(data usersapimodels.UserData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", errs.Validation("%v", err)
	}
	existing, err := i.store.FindByLogin(data.Login)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errs.Conflict("login %q is already taken", data.Login)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	rec := dbmodels.User{
		Login:     data.Login,
		Password:  string(hash),
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		IsActive:  true,
	}
	if data.PositionID != "" {
		rec.PositionID = &data.PositionID
	}
	return i.store.Create(rec)
}

func (i impl) Update(id string, data usersapimodels.UserData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("user not found")
	}
	updMap := map[string]interface{}{
		"first_name": data.FirstName,
		"last_name":  data.LastName,
		"email":      data.Email,
	}
	if data.PositionID != "" {
		updMap["position_id"] = data.PositionID
	}
	if data.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		updMap["password"] = string(hash)
	}
	return i.store.Update(id, updMap)
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errs.NotFound("user not found")
	}
	return i.store.Delete(id)
}

func (i impl) GetByID(id string) (*usersapimodels.UserView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("user not found")
	}
	view := usersapimodels.UserConvert(*rec)
	return &view, nil
}

func (i impl) List(page, limit int) ([]usersapimodels.UserView, error) {
	list, err := i.store.GetList(page, limit)
	if err != nil {
		return nil, err
	}
	result := make([]usersapimodels.UserView, 0, len(list))
	for _, rec := range list {
		result = append(result, usersapimodels.UserConvert(rec))
	}
	return result, nil
}
