package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID     uuid.UUID `json:"uid"`
	Phone  string    `json:"phone"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Sex    int       `json:"sex"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
	Sex    *int    `json:"sex"`
}
