package mapper

import (
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	conditions := make([]string, len(u.ExistingConditions))
	copy(conditions, u.ExistingConditions)
	return &entity.User{
		Id:                 u.Id,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		FullName:           u.FullName,
		Age:                u.Age,
		ExistingConditions: conditions,
		CreatedAt:          u.CreatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	conditions := make(datatypesSlice, len(u.ExistingConditions))
	copy(conditions, u.ExistingConditions)
	return &model.User{
		Id:                 u.Id,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		FullName:           u.FullName,
		Age:                u.Age,
		ExistingConditions: conditions,
		CreatedAt:          u.CreatedAt,
	}
}
