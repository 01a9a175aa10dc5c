package domain

import "fmt"

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleTenant    Role = "Tenant"
	RoleVisitor   Role = "Visitor"
	RoleDeveloper Role = "Developer"
)

// Roles 全部角色（策略测试会遍历）
var Roles = []Role{RoleAdmin, RoleTenant, RoleVisitor, RoleDeveloper}

func (r Role) IsValid() bool { return oneOf(r, Roles) }

func ParseRole(v string) (Role, error) { return parse(v, Roles, "role") }

type LocalType string

const (
	LocalTypeRetail        LocalType = "Retail"
	LocalTypeRestaurant    LocalType = "Restaurant"
	LocalTypeServices      LocalType = "Services"
	LocalTypeEntertainment LocalType = "Entertainment"
	LocalTypeOffice        LocalType = "Office"
)

var LocalTypes = []LocalType{
	LocalTypeRetail, LocalTypeRestaurant, LocalTypeServices, LocalTypeEntertainment, LocalTypeOffice,
}

func (t LocalType) IsValid() bool { return oneOf(t, LocalTypes) }

type LocalStatus string

const (
	LocalAvailable   LocalStatus = "Available"
	LocalOccupied    LocalStatus = "Occupied"
	LocalMaintenance LocalStatus = "Maintenance"
	LocalReserved    LocalStatus = "Reserved"
)

var LocalStatuses = []LocalStatus{LocalAvailable, LocalOccupied, LocalMaintenance, LocalReserved}

func (s LocalStatus) IsValid() bool { return oneOf(s, LocalStatuses) }

type ContractStatus string

const (
	ContractActive    ContractStatus = "Active"
	ContractExpired   ContractStatus = "Expired"
	ContractRenewal   ContractStatus = "Renewal"
	ContractCancelled ContractStatus = "Cancelled"
)

var ContractStatuses = []ContractStatus{ContractActive, ContractExpired, ContractRenewal, ContractCancelled}

func (s ContractStatus) IsValid() bool { return oneOf(s, ContractStatuses) }

// Terminal 合同是否已不再占用商铺
func (s ContractStatus) Terminal() bool {
	return s == ContractExpired || s == ContractCancelled
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentPaid      PaymentStatus = "Paid"
	PaymentLate      PaymentStatus = "Late"
	PaymentCancelled PaymentStatus = "Cancelled"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentLate, PaymentCancelled}

func (s PaymentStatus) IsValid() bool { return oneOf(s, PaymentStatuses) }

type RequestStatus string

const (
	RequestPending    RequestStatus = "Pending"
	RequestInProgress RequestStatus = "InProgress"
	RequestAnswered   RequestStatus = "Answered"
	RequestClosed     RequestStatus = "Closed"
)

var RequestStatuses = []RequestStatus{RequestPending, RequestInProgress, RequestAnswered, RequestClosed}

func (s RequestStatus) IsValid() bool { return oneOf(s, RequestStatuses) }

func oneOf[T ~string](v T, set []T) bool {
	for _, c := range set {
		if c == v {
			return true
		}
	}
	return false
}

func parse[T ~string](v string, set []T, what string) (T, error) {
	for _, c := range set {
		if string(c) == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q", what, v)
}
