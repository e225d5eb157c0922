package types

import "github.com/shopspring/decimal"

// SalesOverview summarizes the filtered order set.
type SalesOverview struct {
	TotalOrders       int64           `json:"total_orders"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalQuantity     int64           `json:"total_quantity"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// SalesTrendPoint is one calendar period of a trend, labelled YYYY-MM-DD or YYYY-MM.
type SalesTrendPoint struct {
	Period string          `json:"period"`
	Sales  decimal.Decimal `json:"sales"`
	Orders int64           `json:"orders"`
}

type ProductRank struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Sales    decimal.Decimal `json:"sales"`
	Quantity int64           `json:"quantity"`
}

type SellerRank struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Sales        decimal.Decimal `json:"sales"`
	Quantity     int64           `json:"quantity"`
	ProductCount int             `json:"product_count"`
}

// Dashboard bundles every view computed for the same filter.
type Dashboard struct {
	Overview     SalesOverview     `json:"overview"`
	DailyTrend   []SalesTrendPoint `json:"daily_trend"`
	MonthlyTrend []SalesTrendPoint `json:"monthly_trend"`
	TopProducts  []ProductRank     `json:"top_products"`
	TopSellers   []SellerRank      `json:"top_sellers"`
}
