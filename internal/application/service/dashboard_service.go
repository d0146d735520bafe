package service

import (
	"context"
	"sort"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/internal/domain/pricing"
	"github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
) *DashboardService {
	return &DashboardService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TodayRevenue   decimal.Decimal     `json:"todayRevenue"`
	TodayGallons   decimal.Decimal     `json:"todayGallons"`
	TodayInvoices  int                 `json:"todayInvoices"`
	TotalRevenue   decimal.Decimal     `json:"totalRevenue"`
	TotalGallons   decimal.Decimal     `json:"totalGallons"`
	TotalInvoices  int                 `json:"totalInvoices"`
	UnpaidInvoices int                 `json:"unpaidInvoices"`
	UnpaidTotal    decimal.Decimal     `json:"unpaidTotal"`
	TotalCustomers int                 `json:"totalCustomers"`
	TotalDrivers   int                 `json:"totalDrivers"`
	ProductGallons []ProductSalesPoint `json:"productGallons"`
	RecentInvoices []entity.Invoice    `json:"recentInvoices"`
}

// ProductSalesPoint represents deliveries of one product
type ProductSalesPoint struct {
	ProductID string          `json:"productId"`
	Product   string          `json:"product"`
	Gallons   decimal.Decimal `json:"gallons"`
	Amount    decimal.Decimal `json:"amount"`
}

const recentInvoiceCount = 5

// GetDashboardStats returns dashboard statistics. "Today" is the local
// calendar day of the device.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TodayRevenue:   decimal.Zero,
		TodayGallons:   decimal.Zero,
		TotalRevenue:   decimal.Zero,
		TotalGallons:   decimal.Zero,
		UnpaidTotal:    decimal.Zero,
		TotalInvoices:  len(invoices),
		TotalCustomers: len(customers),
	}
	for _, u := range users {
		if u.Role == enum.UserRoleDriver {
			stats.TotalDrivers++
		}
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	byProduct := make(map[string]*ProductSalesPoint)
	for _, inv := range invoices {
		gallons := inv.Gallons()
		stats.TotalRevenue = stats.TotalRevenue.Add(inv.GrandTotal)
		stats.TotalGallons = stats.TotalGallons.Add(gallons)

		local := inv.Date.In(now.Location())
		if !local.Before(startOfDay) && local.Before(endOfDay) {
			stats.TodayInvoices++
			stats.TodayRevenue = stats.TodayRevenue.Add(inv.GrandTotal)
			stats.TodayGallons = stats.TodayGallons.Add(gallons)
		}

		if inv.PaymentStatus != enum.PaymentStatusPaid {
			stats.UnpaidInvoices++
			stats.UnpaidTotal = stats.UnpaidTotal.Add(inv.GrandTotal)
		}

		for _, li := range inv.LineItems {
			point, ok := byProduct[li.ProductID]
			if !ok {
				point = &ProductSalesPoint{ProductID: li.ProductID, Product: li.ProductName, Gallons: decimal.Zero, Amount: decimal.Zero}
				byProduct[li.ProductID] = point
			}
			point.Gallons = point.Gallons.Add(li.Gallons)
			point.Amount = point.Amount.Add(li.LineTotal)
		}
	}

	stats.TodayRevenue = pricing.Money(stats.TodayRevenue)
	stats.TotalRevenue = pricing.Money(stats.TotalRevenue)
	stats.UnpaidTotal = pricing.Money(stats.UnpaidTotal)

	stats.ProductGallons = make([]ProductSalesPoint, 0, len(byProduct))
	for _, p := range byProduct {
		p.Amount = pricing.Money(p.Amount)
		stats.ProductGallons = append(stats.ProductGallons, *p)
	}
	sort.Slice(stats.ProductGallons, func(i, j int) bool {
		a, b := stats.ProductGallons[i], stats.ProductGallons[j]
		if !a.Gallons.Equal(b.Gallons) {
			return a.Gallons.GreaterThan(b.Gallons)
		}
		return a.ProductID < b.ProductID
	})

	// invoices are already newest first
	n := recentInvoiceCount
	if len(invoices) < n {
		n = len(invoices)
	}
	stats.RecentInvoices = invoices[:n]

	return stats, nil
}
