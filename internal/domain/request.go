package domain

import "time"

// MinRequestMessage 咨询留言的最小长度
const MinRequestMessage = 10

// Request 访客咨询，可关联某个商铺
type Request struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	Name      string        `gorm:"size:128;not null" json:"name"`
	Email     string        `gorm:"size:191;not null" json:"email"`
	Phone     string        `gorm:"size:32;not null" json:"phone"`
	LocalID   *string       `gorm:"size:36;index" json:"localId"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Status    RequestStatus `gorm:"size:32;not null;default:Pending" json:"status"`
	Response  *string       `gorm:"type:text" json:"response"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (Request) TableName() string { return "requests" }

// RequestInput 不含 status / response，两者由服务端决定
type RequestInput struct {
	Name    string  `json:"name" validate:"required,max=128"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,max=32"`
	LocalID *string `json:"localId"`
	Message string  `json:"message" validate:"required,min=10"`
}

func (in RequestInput) Request() Request {
	r := Request{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	if in.LocalID != nil && *in.LocalID != "" {
		id := *in.LocalID
		r.LocalID = &id
	}
	return r
}

type RequestPatch struct {
	Status   *RequestStatus `json:"status" validate:"omitempty,enum"`
	Response *string        `json:"response"`
}

func (p RequestPatch) Apply(r *Request) {
	setIf(&r.Status, p.Status)
	if p.Response != nil {
		v := *p.Response
		r.Response = &v
	}
}
