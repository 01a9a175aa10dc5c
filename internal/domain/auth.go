package domain

type RegisterInput struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Email    string  `json:"email" validate:"required,email,max=191"`
	FullName string  `json:"fullName" validate:"required,max=128"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Role     Role    `json:"role" validate:"omitempty,enum"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session 注册/登录成功后的返回
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
