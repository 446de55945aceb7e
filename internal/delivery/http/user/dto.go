package http_user

import (
	"time"

	http_common "github.com/humanbelnik/filmorate/internal/delivery/http/common"
	"github.com/humanbelnik/filmorate/internal/model"
)

type UserRequestDTO struct {
	ID       int64  `json:"id" example:"1"`
	Email    string `json:"email" example:"neo@matrix.io"`
	Login    string `json:"login" example:"neo"`
	Name     string `json:"name" example:"Thomas Anderson"`
	Birthday string `json:"birthday" binding:"required,datetime=2006-01-02" example:"1971-09-13"`
}

type UserResponseDTO struct {
	ID       int64   `json:"id" example:"1"`
	Email    string  `json:"email" example:"neo@matrix.io"`
	Login    string  `json:"login" example:"neo"`
	Name     string  `json:"name" example:"Thomas Anderson"`
	Birthday string  `json:"birthday" example:"1971-09-13"`
	Friends  []int64 `json:"friends"`
}

func (r *UserRequestDTO) ConvertToUser() (model.User, error) {
	birthday, err := time.Parse(http_common.DateLayout, r.Birthday)
	if err != nil {
		return model.User{}, err
	}

	return model.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: birthday,
	}, nil
}

func ConvertFromUser(u model.User) UserResponseDTO {
	friends := u.Friends
	if friends == nil {
		friends = []int64{}
	}

	return UserResponseDTO{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: u.Birthday.Format(http_common.DateLayout),
		Friends:  friends,
	}
}

func ConvertFromUserList(users []*model.User) []UserResponseDTO {
	out := make([]UserResponseDTO, len(users))
	for i, u := range users {
		out[i] = ConvertFromUser(*u)
	}
	return out
}
