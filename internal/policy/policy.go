// Package policy 静态的（角色, 操作）授权表
package policy

import "leasehub/internal/domain"

type Operation string

const (
	Register Operation = "auth.register"
	Login    Operation = "auth.login"
	Profile  Operation = "auth.me"

	ListLocals  Operation = "locals.list"
	GetLocal    Operation = "locals.get"
	CreateLocal Operation = "locals.create"
	UpdateLocal Operation = "locals.update"
	DeleteLocal Operation = "locals.delete"

	ListAllContracts Operation = "contracts.list"
	ListOwnContracts Operation = "contracts.my"
	GetContract      Operation = "contracts.get"
	CreateContract   Operation = "contracts.create"
	UpdateContract   Operation = "contracts.update"

	ListAllPayments Operation = "payments.list"
	ListOwnPayments Operation = "payments.my"
	CreatePayment   Operation = "payments.create"

	ListRequests  Operation = "requests.list"
	GetRequest    Operation = "requests.get"
	CreateRequest Operation = "requests.create"
	UpdateRequest Operation = "requests.update"

	ViewStats Operation = "dev.stats"
)

// Operations 授权表里的全部操作
var Operations = []Operation{
	Register, Login, Profile,
	ListLocals, GetLocal, CreateLocal, UpdateLocal, DeleteLocal,
	ListAllContracts, ListOwnContracts, GetContract, CreateContract, UpdateContract,
	ListAllPayments, ListOwnPayments, CreatePayment,
	ListRequests, GetRequest, CreateRequest, UpdateRequest,
	ViewStats,
}

// Allow 角色能否执行 op；未知角色或操作一律拒绝
func Allow(role domain.Role, op Operation) bool {
	switch op {
	case Register, Login, ListLocals, GetLocal, CreateRequest:
		return role.IsValid()
	}
	switch role {
	case domain.RoleAdmin:
		switch op {
		case Profile,
			CreateLocal, UpdateLocal, DeleteLocal,
			ListAllContracts, GetContract, CreateContract, UpdateContract,
			ListAllPayments, CreatePayment,
			ListRequests, GetRequest, UpdateRequest,
			ViewStats:
			return true
		}
	case domain.RoleTenant:
		switch op {
		case Profile, ListOwnContracts, ListOwnPayments:
			return true
		}
	case domain.RoleDeveloper:
		switch op {
		case Profile, ViewStats:
			return true
		}
	case domain.RoleVisitor:
		return op == Profile
	}
	return false
}

// Authorize 以 error 形式返回 Allow 的结果；Profile 还要求已登录
func Authorize(id domain.Identity, op Operation) error {
	if op == Profile && !id.Authenticated() {
		return domain.Unauthenticated("authentication required", nil)
	}
	if !Allow(id.EffectiveRole(), op) {
		return domain.Forbidden("Insufficient permissions")
	}
	return nil
}

// SelfRegistrable 公开注册时能否选择该角色
func SelfRegistrable(role domain.Role) bool {
	switch role {
	case domain.RoleVisitor, domain.RoleTenant:
		return true
	case domain.RoleAdmin, domain.RoleDeveloper:
		return false
	}
	return false
}
