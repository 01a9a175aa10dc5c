package domain

import "time"

// Payment 合同的一期租金
type Payment struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	ContractID    string        `gorm:"size:36;index;not null" json:"contractId"`
	Amount        Decimal       `gorm:"type:numeric(10,2);not null" json:"amount"`
	DueDate       time.Time     `gorm:"not null" json:"dueDate"`
	PaidDate      *time.Time    `json:"paidDate"`
	Status        PaymentStatus `gorm:"size:32;not null;default:Pending" json:"status"`
	PaymentMethod *string       `gorm:"size:64" json:"paymentMethod"`
	Reference     *string       `gorm:"size:64" json:"reference"`
	Notes         *string       `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }

type PaymentInput struct {
	ContractID    string        `json:"contractId" validate:"required"`
	Amount        Decimal       `json:"amount"`
	DueDate       time.Time     `json:"dueDate"`
	PaidDate      *time.Time    `json:"paidDate"`
	Status        PaymentStatus `json:"status" validate:"omitempty,enum"`
	PaymentMethod *string       `json:"paymentMethod" validate:"omitempty,max=64"`
	Reference     *string       `json:"reference" validate:"omitempty,max=64"`
	Notes         *string       `json:"notes"`
}

func (in PaymentInput) Payment() Payment {
	p := Payment{
		ContractID:    in.ContractID,
		Amount:        in.Amount,
		DueDate:       in.DueDate,
		PaidDate:      in.PaidDate,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		Reference:     in.Reference,
		Notes:         in.Notes,
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return p
}

type PaymentWithContract struct {
	Payment
	Contract ContractWithDetails `json:"contract"`
}
