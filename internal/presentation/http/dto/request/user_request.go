package request

// CreateUserRequest represents the create user request body
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" binding:"required,oneof=admin manager cashier"`
	Password string  `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest represents the update user request body
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin manager cashier"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}
