package repository

import "github.com/obrasul/production-api/internal/domain/entity"

// UserRepository define a porta de persistência das contas de acesso.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
