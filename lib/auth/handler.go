package authhandler

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"equip-repair-backend/db"
	usersstore "equip-repair-backend/lib/users/store"
	authutils "equip-repair-backend/lib/utils/auth-utils"
	"equip-repair-backend/lib/utils/errs"
	authapimodels "equip-repair-backend/models/api/auth"
)

type Provider interface {
	Login(data authapimodels.LoginRequest) (*authapimodels.JWTResponse, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) Login(data authapimodels.LoginRequest) (*authapimodels.JWTResponse, error) {
	if err := data.Validate(); err != nil {
		return nil, errs.Validation("%v", err)
	}
	user, err := i.usersStore.FindByLogin(data.Login)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, errs.PermissionDenied("invalid login or password")
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password)); err != nil {
		return nil, errs.PermissionDenied("invalid login or password")
	}
	role, _ := user.Role()
	token, err := authutils.GetToken(user.ID, user.GetFullName(), role)
	if err != nil {
		return nil, err
	}
	if err = i.usersStore.Update(user.ID, map[string]interface{}{"last_login": time.Now()}); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("failed to stamp last login")
	}
	return &authapimodels.JWTResponse{
		Token: token,
		Role:  string(role),
	}, nil
}
