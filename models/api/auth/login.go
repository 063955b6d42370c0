package authapimodels

import (
	"github.com/pkg/errors"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Login == "" {
		return errors.New("login is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type JWTResponse struct {
	Token string `json:"token"`
	Role  string `json:"role,omitempty"`
}
