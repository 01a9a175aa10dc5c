package domain

import "context"

// 约定：查不到返回 (nil, nil)；Update* 对不存在的 id 返回 (nil, nil)，DeleteLocal 返回 false

type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	CountUsersByRole(ctx context.Context) (map[Role]int64, error)
}

type LocalStore interface {
	ListLocals(ctx context.Context) ([]Local, error)
	GetLocal(ctx context.Context, id string) (*Local, error)
	CreateLocal(ctx context.Context, l *Local) error
	UpdateLocal(ctx context.Context, id string, p LocalPatch) (*Local, error)
	DeleteLocal(ctx context.Context, id string) (bool, error)
}

type ContractStore interface {
	ListContracts(ctx context.Context) ([]Contract, error)
	ListContractsByTenant(ctx context.Context, tenantID string) ([]Contract, error)
	GetContract(ctx context.Context, id string) (*Contract, error)
	CreateContract(ctx context.Context, c *Contract) error
	UpdateContract(ctx context.Context, id string, p ContractPatch) (*Contract, error)
}

type PaymentStore interface {
	ListPayments(ctx context.Context) ([]Payment, error)
	ListPaymentsByContract(ctx context.Context, contractID string) ([]Payment, error)
	ListPaymentsByTenant(ctx context.Context, tenantID string) ([]Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	CreatePayment(ctx context.Context, p *Payment) error
}

type RequestStore interface {
	ListRequests(ctx context.Context) ([]Request, error)
	GetRequest(ctx context.Context, id string) (*Request, error)
	CreateRequest(ctx context.Context, r *Request) error
	UpdateRequest(ctx context.Context, id string, p RequestPatch) (*Request, error)
}

// Store 存储句柄，显式传给每个操作（不走全局变量）
type Store interface {
	UserStore
	LocalStore
	ContractStore
	PaymentStore
	RequestStore
}
