package handler

import (
	"github.com/fortress/user-system/internal/core/domain"
	"github.com/fortress/user-system/internal/core/ports"
)

type createUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Age      int    `json:"age" validate:"required,gte=6,lte=60"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	// Role "principal" passes schema validation on purpose: the service
	// rejects it with a 403, not a 400.
	Role string `json:"role" validate:"omitempty,oneof=principal worker user"`
}

func (r createUserRequest) toInput() ports.CreateUserInput {
	gender := domain.Gender(r.Gender)
	if gender == "" {
		gender = domain.GenderMale
	}
	return ports.CreateUserInput{
		Name:     r.Name,
		Age:      r.Age,
		Gender:   gender,
		Email:    r.Email,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// updateUserRequest serves both PUT and PATCH: every field is optional and
// absent fields are left untouched.
type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	Age      *int    `json:"age" validate:"omitempty,gte=6,lte=60"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=principal worker user"`
}

func (r updateUserRequest) toInput() ports.UpdateUserInput {
	input := ports.UpdateUserInput{
		Name:     r.Name,
		Age:      r.Age,
		Password: r.Password,
	}
	if r.Gender != nil {
		g := domain.Gender(*r.Gender)
		input.Gender = &g
	}
	if r.Email != nil {
		input.Email = r.Email
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		input.Role = &role
	}
	return input
}

// userResponse is the public account shape: the password digest never leaves
// the server.
type userResponse struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		UserID: u.ID,
		Name:   u.Name,
		Age:    u.Age,
		Gender: string(u.Gender),
		Email:  u.Email,
		Role:   string(u.Role),
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}
