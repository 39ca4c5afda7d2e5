package model

type GetMeRequest struct{}

type GetMeResponse struct {
	User    User `json:"user"`
	IsAdmin bool `json:"is_admin"`
}

type AssignGlobalRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type AssignGlobalRoleResponse struct{}
