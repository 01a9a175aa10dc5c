package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leasehub/internal/core/auth"
	"leasehub/internal/domain"
	"leasehub/internal/repo/memory"
	"leasehub/internal/service"
)

type fixture struct {
	store   *memory.Store
	auth    *service.AuthService
	leasing *service.LeasingService
	jwt     *auth.JWTer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	jwt := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "leasehub-test", TTL: time.Hour}
	log := zap.NewNop()
	return &fixture{
		store:   store,
		auth:    service.NewAuthService(store, jwt, log),
		leasing: service.NewLeasingService(store, log),
		jwt:     jwt,
	}
}

// user 走特权路径建号并返回其身份
func (f *fixture) user(t *testing.T, name string, role domain.Role) domain.Identity {
	t.Helper()
	u, err := f.auth.CreateUser(context.Background(), domain.RegisterInput{
		Username: name,
		Password: "secret123",
		Email:    name + "@example.com",
		FullName: "User " + name,
		Role:     role,
	})
	require.NoError(t, err)
	return domain.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func (f *fixture) local(t *testing.T, admin domain.Identity, name string) *domain.Local {
	t.Helper()
	floor := 1
	l, err := f.leasing.CreateLocal(context.Background(), admin, domain.LocalInput{
		Name:         name,
		Type:         domain.LocalTypeRetail,
		Size:         domain.MustDecimal("85.5"),
		Floor:        &floor,
		MonthlyPrice: domain.MustDecimal("2500"),
		Location:     "North Wing",
	})
	require.NoError(t, err)
	return l
}

func (f *fixture) contract(t *testing.T, admin domain.Identity, localID, tenantID string) *domain.ContractWithDetails {
	t.Helper()
	c, err := f.leasing.CreateContract(context.Background(), admin, domain.ContractInput{
		LocalID:     localID,
		TenantID:    tenantID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent: domain.MustDecimal("2500"),
		Deposit:     domain.MustDecimal("5000"),
		Terms:       "standard",
	})
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }
