package domain

import "time"

// Contract 一份租约：某个租户在一段日期内租用一个 Local
type Contract struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	LocalID     string         `gorm:"size:36;index;not null" json:"localId"`
	TenantID    string         `gorm:"size:36;index;not null" json:"tenantId"`
	StartDate   time.Time      `gorm:"not null" json:"startDate"`
	EndDate     time.Time      `gorm:"not null" json:"endDate"`
	MonthlyRent Decimal        `gorm:"type:numeric(10,2);not null" json:"monthlyRent"`
	Deposit     Decimal        `gorm:"type:numeric(10,2);not null" json:"deposit"`
	Status      ContractStatus `gorm:"size:32;not null;default:Active" json:"status"`
	Terms       string         `gorm:"type:text;not null" json:"terms"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (Contract) TableName() string { return "contracts" }

// Overlaps 两份合同的日期区间是否有交集（首尾都算）
func (c Contract) Overlaps(o Contract) bool {
	return !c.StartDate.After(o.EndDate) && !o.StartDate.After(c.EndDate)
}

type ContractInput struct {
	LocalID     string         `json:"localId" validate:"required"`
	TenantID    string         `json:"tenantId" validate:"required"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
	MonthlyRent Decimal        `json:"monthlyRent"`
	Deposit     Decimal        `json:"deposit"`
	Status      ContractStatus `json:"status" validate:"omitempty,enum"`
	Terms       string         `json:"terms"`
}

func (in ContractInput) Contract() Contract {
	c := Contract{
		LocalID:     in.LocalID,
		TenantID:    in.TenantID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		MonthlyRent: in.MonthlyRent,
		Deposit:     in.Deposit,
		Status:      in.Status,
		Terms:       in.Terms,
	}
	if c.Status == "" {
		c.Status = ContractActive
	}
	return c
}

type ContractPatch struct {
	StartDate   *time.Time      `json:"startDate"`
	EndDate     *time.Time      `json:"endDate"`
	MonthlyRent *Decimal        `json:"monthlyRent"`
	Deposit     *Decimal        `json:"deposit"`
	Status      *ContractStatus `json:"status" validate:"omitempty,enum"`
	Terms       *string         `json:"terms"`
}

func (p ContractPatch) Apply(c *Contract) {
	setIf(&c.StartDate, p.StartDate)
	setIf(&c.EndDate, p.EndDate)
	setIf(&c.MonthlyRent, p.MonthlyRent)
	setIf(&c.Deposit, p.Deposit)
	setIf(&c.Status, p.Status)
	setIf(&c.Terms, p.Terms)
}

// ContractWithDetails 合同 + 商铺 + 租户摘要
type ContractWithDetails struct {
	Contract
	Local  Local         `json:"local"`
	Tenant TenantSummary `json:"tenant"`
}
