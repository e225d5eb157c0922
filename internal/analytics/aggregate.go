package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
)

const (
	// DefaultTopN is the ranking length used when the caller does not pick one.
	DefaultTopN = 10

	UnknownProductName = "unknown product"
	UnknownSellerName  = "unknown seller"

	unresolvedSellerID int64 = 0
)

// ComputeOverview totals the order set. An empty set yields an all-zero overview.
func ComputeOverview(orders []types.OrderRecord) types.SalesOverview {
	overview := types.SalesOverview{
		TotalSales:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	if len(orders) == 0 {
		return overview
	}

	for _, order := range orders {
		overview.TotalOrders++
		overview.TotalSales = overview.TotalSales.Add(order.TotalPrice)
		overview.TotalQuantity += order.Quantity
	}
	overview.AverageOrderValue = overview.TotalSales.Div(decimal.NewFromInt(overview.TotalOrders))
	return overview
}

type trendBucket struct {
	sales  decimal.Decimal
	orders int64
}

// ComputeTrend buckets orders by calendar period and emits one point for every
// period in the window, zero-filled where no order landed. Orders outside the
// window are ignored.
func ComputeTrend(orders []types.OrderRecord, window types.Window) []types.SalesTrendPoint {
	buckets := make(map[string]*trendBucket)
	for _, order := range orders {
		key := PeriodLabel(order.CreatedAt, window.Granularity)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &trendBucket{sales: decimal.Zero}
			buckets[key] = bucket
		}
		bucket.sales = bucket.sales.Add(order.TotalPrice)
		bucket.orders++
	}

	points := make([]types.SalesTrendPoint, 0)
	cur := periodStart(window.Start, window.Granularity)
	for !cur.After(window.End) {
		label := PeriodLabel(cur, window.Granularity)
		point := types.SalesTrendPoint{Period: label, Sales: decimal.Zero}
		if bucket, ok := buckets[label]; ok {
			point.Sales = bucket.sales
			point.Orders = bucket.orders
		}
		points = append(points, point)
		cur = nextPeriod(cur, window.Granularity)
	}
	return points
}

// ComputeTopProducts ranks products by sales, highest first, ties broken by
// ascending id. topN <= 0 yields an empty ranking.
func ComputeTopProducts(orders []types.OrderRecord, topN int) []types.ProductRank {
	if topN <= 0 {
		return []types.ProductRank{}
	}

	byID := make(map[int64]*types.ProductRank)
	for _, order := range orders {
		rank, ok := byID[order.ProductID]
		if !ok {
			rank = &types.ProductRank{ID: order.ProductID, Name: UnknownProductName, Sales: decimal.Zero}
			byID[order.ProductID] = rank
		}
		if rank.Name == UnknownProductName && order.ProductName != nil {
			rank.Name = *order.ProductName
		}
		rank.Sales = rank.Sales.Add(order.TotalPrice)
		rank.Quantity += order.Quantity
	}

	ranks := make([]types.ProductRank, 0, len(byID))
	for _, rank := range byID {
		ranks = append(ranks, *rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		return ranksBefore(ranks[i].Sales, ranks[i].ID, ranks[j].Sales, ranks[j].ID)
	})
	return truncate(ranks, topN)
}

// ComputeTopSellers ranks sellers by sales like ComputeTopProducts. Orders of
// the unresolved seller id 0 are left out.
func ComputeTopSellers(orders []types.OrderRecord, topN int) []types.SellerRank {
	if topN <= 0 {
		return []types.SellerRank{}
	}

	byID := make(map[int64]*types.SellerRank)
	products := make(map[int64]map[int64]struct{})
	for _, order := range orders {
		if order.SellerID == unresolvedSellerID {
			continue
		}
		rank, ok := byID[order.SellerID]
		if !ok {
			rank = &types.SellerRank{ID: order.SellerID, Name: UnknownSellerName, Sales: decimal.Zero}
			byID[order.SellerID] = rank
			products[order.SellerID] = make(map[int64]struct{})
		}
		if rank.Name == UnknownSellerName && order.SellerName != nil {
			rank.Name = *order.SellerName
		}
		rank.Sales = rank.Sales.Add(order.TotalPrice)
		rank.Quantity += order.Quantity
		products[order.SellerID][order.ProductID] = struct{}{}
	}

	ranks := make([]types.SellerRank, 0, len(byID))
	for id, rank := range byID {
		rank.ProductCount = len(products[id])
		ranks = append(ranks, *rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		return ranksBefore(ranks[i].Sales, ranks[i].ID, ranks[j].Sales, ranks[j].ID)
	})
	return truncate(ranks, topN)
}

func ranksBefore(salesA decimal.Decimal, idA int64, salesB decimal.Decimal, idB int64) bool {
	if cmp := salesA.Cmp(salesB); cmp != 0 {
		return cmp > 0
	}
	return idA < idB
}

func truncate[T any](ranks []T, topN int) []T {
	if len(ranks) > topN {
		return ranks[:topN]
	}
	return ranks
}
