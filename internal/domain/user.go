package domain

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	FullName     string    `gorm:"size:128;not null" json:"fullName"`
	Phone        *string   `gorm:"size:32" json:"phone"`
	Role         Role      `gorm:"size:16;not null;default:Visitor" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

// TenantSummary 合同视图里嵌入的租户精简信息
type TenantSummary struct {
	ID       string  `json:"id"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
}

func (u User) Summary() TenantSummary {
	return TenantSummary{ID: u.ID, FullName: u.FullName, Email: u.Email, Phone: u.Phone}
}

// Identity 已校验的调用方身份，贯穿每个操作；零值即匿名访客
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

func Anonymous() Identity { return Identity{Role: RoleVisitor} }

func (i Identity) Authenticated() bool { return i.UserID != "" }

// EffectiveRole 未认证时一律按 Visitor 处理
func (i Identity) EffectiveRole() Role {
	if !i.Authenticated() || !i.Role.IsValid() {
		return RoleVisitor
	}
	return i.Role
}
