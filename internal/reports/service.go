// Package reports derives read-only aggregates from completed bookings.
package reports

import (
	"context"
	"log"
	"time"

	"fleetrent/internal/caching"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"
	"fleetrent/internal/settlement"
)

const netBalanceCacheTTL = 5 * time.Minute

// NetBalanceReport aggregates payments minus deductions over the
// completed bookings visible to the caller.
type NetBalanceReport struct {
	CompletedBookings int     `json:"completed_bookings"`
	TotalPayments     float64 `json:"total_payments"`
	TotalDeductions   float64 `json:"total_deductions"`
	NetBalance        float64 `json:"net_balance"`
}

type Service interface {
	NetBalance(ctx context.Context, sess common.Session) (*NetBalanceReport, error)
}

type service struct {
	bookingRepo repositories.BookingRepository
	cacheSvc    caching.CacheService
}

func NewService(bookingRepo repositories.BookingRepository, cacheSvc caching.CacheService) Service {
	return &service{
		bookingRepo: bookingRepo,
		cacheSvc:    cacheSvc,
	}
}

// NetBalance scopes the aggregate to the caller: drivers see only the
// bookings assigned to them, everyone else sees the whole tenant.
func (s *service) NetBalance(ctx context.Context, sess common.Session) (*NetBalanceReport, error) {
	scope := "tenant"
	if sess.Role == models.RoleDriver {
		scope = "driver:" + sess.UserID.String()
	}

	if cached, err := s.cacheSvc.GetNetBalance(ctx, sess.TenantID, scope); err == nil && cached != nil {
		return reportFromCache(cached), nil
	}

	var bookings []*models.Booking
	var err error
	if sess.Role == models.RoleDriver {
		bookings, err = s.bookingRepo.ListCompletedByDriver(ctx, sess.TenantID, sess.UserID)
	} else {
		bookings, err = s.bookingRepo.ListCompleted(ctx, sess.TenantID)
	}
	if err != nil {
		return nil, err
	}

	lines := make([]settlement.Line, 0, len(bookings))
	var payments, deductions float64
	for _, b := range bookings {
		line := settlement.Line{
			PaymentAtStart: common.SafeFloat64(b.PaymentAtStart),
			PaymentAtEnd:   common.SafeFloat64(b.PaymentAtEnd),
			FuelCharge:     common.SafeFloat64(b.FuelCharge),
			DelayFee:       common.SafeFloat64(b.DelayFee),
		}
		payments += line.PaymentAtStart + line.PaymentAtEnd
		deductions += line.FuelCharge + line.DelayFee
		lines = append(lines, line)
	}

	report := &NetBalanceReport{
		CompletedBookings: len(bookings),
		TotalPayments:     payments,
		TotalDeductions:   deductions,
		NetBalance:        settlement.NetBalance(lines),
	}

	cachePayload := map[string]interface{}{
		"completed_bookings": report.CompletedBookings,
		"total_payments":     report.TotalPayments,
		"total_deductions":   report.TotalDeductions,
		"net_balance":        report.NetBalance,
	}
	if err := s.cacheSvc.SetNetBalance(ctx, sess.TenantID, scope, cachePayload, netBalanceCacheTTL); err != nil {
		log.Printf("Failed to cache net balance for tenant %s: %v", sess.TenantID, err)
	}

	return report, nil
}

func reportFromCache(cached map[string]interface{}) *NetBalanceReport {
	report := &NetBalanceReport{}
	if v, ok := cached["completed_bookings"].(float64); ok {
		report.CompletedBookings = int(v)
	}
	if v, ok := cached["total_payments"].(float64); ok {
		report.TotalPayments = v
	}
	if v, ok := cached["total_deductions"].(float64); ok {
		report.TotalDeductions = v
	}
	if v, ok := cached["net_balance"].(float64); ok {
		report.NetBalance = v
	}
	return report
}
