package user

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	TypeCliente     UserType = "cliente"
	TypeFuncionario UserType = "funcionario"
	TypeAdmin       UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case TypeCliente, TypeFuncionario, TypeAdmin:
		return true
	}
	return false
}

// DashboardRoute is the SPA route a principal of this type lands on
// after login.
func (t UserType) DashboardRoute() string {
	switch t {
	case TypeCliente:
		return "/cliente"
	case TypeFuncionario:
		return "/funcionario"
	case TypeAdmin:
		return "/admin"
	}
	return ""
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	UserType     UserType
	CreatedAt    time.Time
	CreatedBy    *uuid.UUID
}
