package domain

import "time"

// Local 可出租的商铺
type Local struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	Name         string      `gorm:"size:128;not null" json:"name"`
	Description  string      `gorm:"type:text;not null" json:"description"`
	Type         LocalType   `gorm:"size:32;not null" json:"type"`
	Status       LocalStatus `gorm:"size:32;not null;default:Available" json:"status"`
	Size         Decimal     `gorm:"type:numeric(10,2);not null" json:"size"`
	Floor        int         `gorm:"not null" json:"floor"`
	MonthlyPrice Decimal     `gorm:"type:numeric(10,2);not null" json:"monthlyPrice"`
	Images       []string    `gorm:"serializer:json;type:text" json:"images"`
	Amenities    []string    `gorm:"serializer:json;type:text" json:"amenities"`
	Location     string      `gorm:"size:191;not null" json:"location"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (Local) TableName() string { return "locals" }

type LocalInput struct {
	Name         string      `json:"name" validate:"required,max=128"`
	Description  string      `json:"description"`
	Type         LocalType   `json:"type" validate:"required,enum"`
	Status       LocalStatus `json:"status" validate:"omitempty,enum"`
	Size         Decimal     `json:"size"`
	Floor        *int        `json:"floor" validate:"required,min=0"`
	MonthlyPrice Decimal     `json:"monthlyPrice"`
	Images       []string    `json:"images"`
	Amenities    []string    `json:"amenities"`
	Location     string      `json:"location" validate:"required,max=191"`
}

// Local 生成记录，id 和时间戳由存储层填写
func (in LocalInput) Local() Local {
	l := Local{
		Name:         in.Name,
		Description:  in.Description,
		Type:         in.Type,
		Status:       in.Status,
		Size:         in.Size,
		MonthlyPrice: in.MonthlyPrice,
		Images:       nonNil(in.Images),
		Amenities:    nonNil(in.Amenities),
		Location:     in.Location,
	}
	if in.Floor != nil {
		l.Floor = *in.Floor
	}
	if l.Status == "" {
		l.Status = LocalAvailable
	}
	return l
}

// LocalPatch 部分更新，nil 字段不改
type LocalPatch struct {
	Name         *string      `json:"name" validate:"omitempty,min=1,max=128"`
	Description  *string      `json:"description"`
	Type         *LocalType   `json:"type" validate:"omitempty,enum"`
	Status       *LocalStatus `json:"status" validate:"omitempty,enum"`
	Size         *Decimal     `json:"size"`
	Floor        *int         `json:"floor" validate:"omitempty,min=0"`
	MonthlyPrice *Decimal     `json:"monthlyPrice"`
	Images       *[]string    `json:"images"`
	Amenities    *[]string    `json:"amenities"`
	Location     *string      `json:"location" validate:"omitempty,min=1,max=191"`
}

func (p LocalPatch) Apply(l *Local) {
	setIf(&l.Name, p.Name)
	setIf(&l.Description, p.Description)
	setIf(&l.Type, p.Type)
	setIf(&l.Status, p.Status)
	setIf(&l.Size, p.Size)
	setIf(&l.Floor, p.Floor)
	setIf(&l.MonthlyPrice, p.MonthlyPrice)
	if p.Images != nil {
		l.Images = nonNil(*p.Images)
	}
	if p.Amenities != nil {
		l.Amenities = nonNil(*p.Amenities)
	}
	setIf(&l.Location, p.Location)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
