package httpdto

import "relay-chat/internal/domain"

// UserDTO represents a user in API responses
type UserDTO struct {
	NickName string `json:"nickName"`
	FullName string `json:"fullName"`
	Status   string `json:"status"`
}

// ListUsersResponse is returned when listing connected users
type ListUsersResponse struct {
	Users []UserDTO `json:"users"`
}

// FromUser converts a domain user to UserDTO
func FromUser(u domain.User) UserDTO {
	return UserDTO{
		NickName: u.NickName,
		FullName: u.FullName,
		Status:   string(u.Status),
	}
}

// FromUserSlice converts a slice of domain users to UserDTO slice
func FromUserSlice(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = FromUser(u)
	}
	return dtos
}
