package domain

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale 金额和面积保留的小数位数
const Scale = 2

// Decimal 定点数：输入接受 JSON 数字或字符串，输出固定为 Scale 位小数的字符串
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(v string) (Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q", v)
	}
	return Decimal{d.Round(Scale)}, nil
}

// MustDecimal 仅用于确定合法的字面量
func MustDecimal(v string) Decimal {
	d, err := NewDecimal(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) String() string { return d.StringFixed(Scale) }

func (d Decimal) MarshalJSON() ([]byte, error) { return []byte(strconv.Quote(d.String())), nil }

func (d *Decimal) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*d = Decimal{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid decimal %s", raw)
		}
		raw = s
	}
	v, err := NewDecimal(raw)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Decimal) Value() (driver.Value, error) { return d.String(), nil }

func (d *Decimal) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Decimal{}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case float64:
		*d = Decimal{decimal.NewFromFloat(v).Round(Scale)}
		return nil
	case int64:
		*d = Decimal{decimal.NewFromInt(v)}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Decimal", src)
}

func (d *Decimal) scanString(s string) error {
	v, err := NewDecimal(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
