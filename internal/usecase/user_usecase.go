package usecase

import (
	"context"

	"groupie/internal/domain/user"
	ucuser "groupie/internal/usecase/user"
)

type UserUsecase interface {
	Get(ctx context.Context, id int64) (user.User, error)
	Create(ctx context.Context, in user.NewUser) (user.User, error)
	Update(ctx context.Context, id int64, p user.Patch) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository, bcryptCost int) *User {
	return &User{svc: ucuser.NewService(users, bcryptCost)}
}

func (u *User) Get(ctx context.Context, id int64) (user.User, error) {
	return u.svc.Get(ctx, id)
}

func (u *User) Create(ctx context.Context, in user.NewUser) (user.User, error) {
	return u.svc.Create(ctx, in)
}

func (u *User) Update(ctx context.Context, id int64, p user.Patch) (user.User, error) {
	return u.svc.Update(ctx, id, p)
}

func (u *User) Delete(ctx context.Context, id int64) error {
	return u.svc.Delete(ctx, id)
}
