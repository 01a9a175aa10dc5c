package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"leasehub/internal/domain"
)

// SeedOptions 演示账号密码
type SeedOptions struct {
	AdminPassword  string
	TenantPassword string
}

// Seed 写入演示数据：管理员、租户各一个，五个商铺，已出租商铺上一份 Active 合同
// （六期月租）以及两条咨询。admin 账号已存在时什么都不做
func Seed(ctx context.Context, store domain.Store, auth *AuthService, opts SeedOptions, log *zap.Logger) error {
	if ex, err := store.FindByUsername(ctx, "admin"); err != nil {
		return err
	} else if ex != nil {
		log.Info("seed skipped, data present")
		return nil
	}

	phone := func(s string) *string { return &s }
	admin, err := auth.CreateUser(ctx, domain.RegisterInput{
		Username: "admin",
		Password: opts.AdminPassword,
		Email:    "admin@leasehub.local",
		FullName: "Property Administrator",
		Phone:    phone("+1 234 567 8900"),
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	tenant, err := auth.CreateUser(ctx, domain.RegisterInput{
		Username: "tenant1",
		Password: opts.TenantPassword,
		Email:    "tenant@example.com",
		FullName: "Maria Gonzalez",
		Phone:    phone("+1 234 567 8901"),
		Role:     domain.RoleTenant,
	})
	if err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}

	locals := []domain.Local{
		{
			Name:         "Local A-101",
			Description:  "Spacious retail unit in a high-traffic area, suited to clothing or accessories. Great visibility and modern finishes.",
			Type:         domain.LocalTypeRetail,
			Status:       domain.LocalAvailable,
			Size:         domain.MustDecimal("85.50"),
			Floor:        1,
			MonthlyPrice: domain.MustDecimal("2500.00"),
			Amenities:    []string{"Air Conditioning", "LED Lighting", "Front Display"},
			Location:     "North Wing, Section A",
		},
		{
			Name:         "Local B-205",
			Description:  "Cozy unit for a restaurant or cafe. Gas installation and smoke extraction included.",
			Type:         domain.LocalTypeRestaurant,
			Status:       domain.LocalOccupied,
			Size:         domain.MustDecimal("120.00"),
			Floor:        2,
			MonthlyPrice: domain.MustDecimal("3800.00"),
			Amenities:    []string{"Smoke Extraction", "Gas Installation", "Storage Room"},
			Location:     "South Wing, Section B",
		},
		{
			Name:         "Local C-150",
			Description:  "Modern space for a professional office or services, with direct street access.",
			Type:         domain.LocalTypeOffice,
			Status:       domain.LocalAvailable,
			Size:         domain.MustDecimal("65.00"),
			Floor:        1,
			MonthlyPrice: domain.MustDecimal("1900.00"),
			Amenities:    []string{"Private Bathroom", "Network Cabling", "Air Conditioning"},
			Location:     "East Wing, Section C",
		},
		{
			Name:         "Local D-302",
			Description:  "Large unit for a gym, spa or beauty center. High ceilings and good ventilation.",
			Type:         domain.LocalTypeServices,
			Status:       domain.LocalAvailable,
			Size:         domain.MustDecimal("180.00"),
			Floor:        3,
			MonthlyPrice: domain.MustDecimal("4500.00"),
			Amenities:    []string{"Showers", "Changing Rooms", "Reception Area"},
			Location:     "West Wing, Section D",
		},
		{
			Name:         "Local E-110",
			Description:  "Premium unit for technology or entertainment stores in the busiest zone.",
			Type:         domain.LocalTypeEntertainment,
			Status:       domain.LocalReserved,
			Size:         domain.MustDecimal("95.00"),
			Floor:        1,
			MonthlyPrice: domain.MustDecimal("3200.00"),
			Amenities:    []string{"Sound System", "Feature Lighting", "Large Display"},
			Location:     "Central Plaza",
		},
	}
	for i := range locals {
		if err := store.CreateLocal(ctx, &locals[i]); err != nil {
			return fmt.Errorf("seed local %s: %w", locals[i].Name, err)
		}
	}

	occupied := locals[1]
	contract := domain.Contract{
		LocalID:     occupied.ID,
		TenantID:    tenant.ID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent: occupied.MonthlyPrice,
		Deposit:     domain.MustDecimal("7600.00"),
		Status:      domain.ContractActive,
		Terms:       "Two-year lease with renewal option.",
	}
	if err := store.CreateContract(ctx, &contract); err != nil {
		return fmt.Errorf("seed contract: %w", err)
	}

	for i := 0; i < 6; i++ {
		due := contract.StartDate.AddDate(0, i, 0)
		p := domain.Payment{
			ContractID: contract.ID,
			Amount:     contract.MonthlyRent,
			DueDate:    due,
			Status:     domain.PaymentPending,
		}
		if i < 5 {
			paid := due.AddDate(0, 0, -2)
			method := "Bank Transfer"
			ref := fmt.Sprintf("PAY-2024-%03d", i+1)
			p.PaidDate, p.PaymentMethod, p.Reference = &paid, &method, &ref
			p.Status = domain.PaymentPaid
		}
		if err := store.CreatePayment(ctx, &p); err != nil {
			return fmt.Errorf("seed payment %d: %w", i+1, err)
		}
	}

	visit := domain.Request{
		Name:    "Carlos Ruiz",
		Email:   "carlos.ruiz@example.com",
		Phone:   "+1 234 567 8902",
		LocalID: &locals[0].ID,
		Message: "I am interested in local A-101 for a clothing store. Could we schedule a visit?",
	}
	inquiry := domain.Request{
		Name:    "Ana Martinez",
		Email:   "ana.martinez@example.com",
		Phone:   "+1 234 567 8903",
		Message: "Do you have units larger than 100 square meters on the ground floor?",
	}
	for _, r := range []*domain.Request{&visit, &inquiry} {
		if err := store.CreateRequest(ctx, r); err != nil {
			return fmt.Errorf("seed request: %w", err)
		}
	}
	inProgress := domain.RequestInProgress
	if _, err := store.UpdateRequest(ctx, inquiry.ID, domain.RequestPatch{Status: &inProgress}); err != nil {
		return fmt.Errorf("seed request status: %w", err)
	}

	log.Info("seed done",
		zap.String("admin_id", admin.ID),
		zap.String("tenant_id", tenant.ID),
		zap.Int("locals", len(locals)),
	)
	return nil
}
