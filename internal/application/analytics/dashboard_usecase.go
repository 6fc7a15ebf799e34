// Package analytics arma el resumen del tablero a partir de agregados de solo
// lectura. Nunca modifica ventas ni stock.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// DashboardUseCase agrega los contadores del tablero.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso del tablero.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Stats consulta los agregados en paralelo y devuelve el resumen. Los rangos
// "hoy" y "mes" se calculan en hora local del servidor.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error

		productsTotal, lowStock   int64
		salesToday, salesMonth    int64
		revenueToday, revenueMes  decimal.Decimal
		pendingSales, activeUsers int64
	)

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run(func() error {
		var err error
		productsTotal, lowStock, err = uc.analyticsRepo.ProductCounts(ctx)
		return err
	})
	run(func() error {
		var err error
		salesToday, revenueToday, err = uc.analyticsRepo.SalesSince(ctx, todayStart)
		return err
	})
	run(func() error {
		var err error
		salesMonth, revenueMes, err = uc.analyticsRepo.SalesSince(ctx, monthStart)
		return err
	})
	run(func() error {
		var err error
		pendingSales, err = uc.analyticsRepo.CountSalesByStatus(ctx, entity.SaleStatusPending)
		return err
	})
	run(func() error {
		var err error
		activeUsers, err = uc.analyticsRepo.CountActiveUsers(ctx)
		return err
	})

	wg.Wait()
	if len(errs) > 0 {
		return nil, errs[0]
	}

	return &dto.DashboardStatsResponse{
		Products: dto.DashboardProducts{Total: productsTotal, LowStock: lowStock},
		Sales:    dto.DashboardSales{Today: salesToday, Month: salesMonth, Pending: pendingSales},
		Revenue:  dto.DashboardRevenue{Today: revenueToday, Month: revenueMes},
		Users:    dto.DashboardUsers{Active: activeUsers},
	}, nil
}
