package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse resumen para GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	Products DashboardProducts `json:"products"`
	Sales    DashboardSales    `json:"sales"`
	Revenue  DashboardRevenue  `json:"revenue"`
	Users    DashboardUsers    `json:"users"`
}

// DashboardProducts contadores del catálogo.
type DashboardProducts struct {
	Total    int64 `json:"total"`
	LowStock int64 `json:"low_stock"`
}

// DashboardSales contadores de ventas.
type DashboardSales struct {
	Today   int64 `json:"today"`
	Month   int64 `json:"month"`
	Pending int64 `json:"pending"`
}

// DashboardRevenue ingresos del día y del mes.
type DashboardRevenue struct {
	Today decimal.Decimal `json:"today"`
	Month decimal.Decimal `json:"month"`
}

// DashboardUsers contadores de usuarios.
type DashboardUsers struct {
	Active int64 `json:"active"`
}
