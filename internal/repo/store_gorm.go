package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"leasehub/internal/domain"
	"leasehub/pkg/utils"
)

// GormStore 基于 gorm 的持久化存储（postgres / mysql / sqlite）
type GormStore struct {
	db    *gorm.DB
	newID func() string
}

var _ domain.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db, newID: utils.NewID} }

// Models 存储负责的表，按依赖顺序
func Models() []any {
	return []any{&domain.User{}, &domain.Local{}, &domain.Contract{}, &domain.Payment{}, &domain.Request{}}
}

func (r *GormStore) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(Models()...)
}

func (r *GormStore) now() time.Time { return r.db.NowFunc().UTC() }

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var v T
	err := db.WithContext(ctx).Where(query, args...).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func list[T any](ctx context.Context, db *gorm.DB, query string, args ...any) ([]T, error) {
	out := []T{}
	q := db.WithContext(ctx)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// 不依赖 gorm.ErrDuplicatedKey，避免版本和方言差异
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// ---------- 用户 ----------

func (r *GormStore) CreateUser(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ex, err := first[domain.User](ctx, tx, "username = ?", u.Username); err != nil {
			return err
		} else if ex != nil {
			return domain.Conflict("Username already exists")
		}
		if ex, err := first[domain.User](ctx, tx, "email = ?", u.Email); err != nil {
			return err
		} else if ex != nil {
			return domain.Conflict("Email already exists")
		}
		u.ID = r.newID()
		u.CreatedAt = r.now()
		if err := tx.Create(u).Error; err != nil {
			if isDupKey(err) {
				return domain.Conflict("username or email already exists")
			}
			return err
		}
		return nil
	})
}

func (r *GormStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return first[domain.User](ctx, r.db, "id = ?", id)
}

func (r *GormStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return first[domain.User](ctx, r.db, "username = ?", username)
}

func (r *GormStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return first[domain.User](ctx, r.db, "email = ?", email)
}

func (r *GormStore) CountUsersByRole(ctx context.Context) (map[domain.Role]int64, error) {
	var rows []struct {
		Role domain.Role
		N    int64
	}
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("role, count(*) AS n").Group("role").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Role]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.N
	}
	return out, nil
}
