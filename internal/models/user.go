package models

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus int

const (
	UserBanned UserStatus = 0
	UserActive UserStatus = 1
)

type Sex int

const (
	SexUnknown Sex = 0
	SexMale    Sex = 1
	SexFemale  Sex = 2
)

func (s Sex) Valid() bool {
	return s >= SexUnknown && s <= SexFemale
}

type User struct {
	ID        uuid.UUID  `json:"uid"`
	Phone     string     `json:"phone"`
	Password  string     `json:"-"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	Sex       Sex        `json:"sex"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) IsBanned() bool {
	return u.Status == UserBanned
}
