package sdk

import (
	"context"
	"strconv"

	"github.com/wanderdata/wanderdata/core/domain"
)

// ListOptions are the optional query-string parameters of a list call.
// Zero values are not sent.
type ListOptions struct {
	// Status filters booking_item and revenue_performance; the server
	// defaults it to CONFIRMED
	Status string
	// Limit is forwarded as is; the server does not interpret it
	Limit int
}

func (o ListOptions) params() map[string]string {
	params := map[string]string{"status": o.Status}
	if o.Limit > 0 {
		params["limit"] = strconv.Itoa(o.Limit)
	}
	return params
}

func (c *Client) ListBookingItems(ctx context.Context, opts ListOptions) ([]domain.BookingItem, error) {
	return list[domain.BookingItem](ctx, c, "booking_item", opts.params())
}

func (c *Client) ListBookingRevenueStatus(ctx context.Context, opts ListOptions) ([]domain.BookingRevenueStatus, error) {
	return list[domain.BookingRevenueStatus](ctx, c, "booking_revenue_status", opts.params())
}

func (c *Client) ListBookingOccupancyRate(ctx context.Context, opts ListOptions) ([]domain.OccupancyRate, error) {
	return list[domain.OccupancyRate](ctx, c, "booking_occupancy_rate", opts.params())
}

func (c *Client) ListRevenuePerformance(ctx context.Context, opts ListOptions) ([]domain.RevenuePerformance, error) {
	return list[domain.RevenuePerformance](ctx, c, "revenue_performance", opts.params())
}

func (c *Client) ListOptimizedRevenue(ctx context.Context, opts ListOptions) ([]domain.OptimizedRevenue, error) {
	return list[domain.OptimizedRevenue](ctx, c, "optimized_revenue", opts.params())
}

func (c *Client) ListFlightOverview(ctx context.Context, opts ListOptions) ([]domain.FlightOverview, error) {
	return list[domain.FlightOverview](ctx, c, "flight_overview", opts.params())
}

func (c *Client) ListFlightPrices(ctx context.Context, opts ListOptions) ([]domain.FlightPrices, error) {
	return list[domain.FlightPrices](ctx, c, "flight_prices", opts.params())
}

func (c *Client) ListFlightPopularity(ctx context.Context, opts ListOptions) ([]domain.FlightPopularity, error) {
	return list[domain.FlightPopularity](ctx, c, "flight_popularity", opts.params())
}

func (c *Client) ListFlightInventory(ctx context.Context, opts ListOptions) ([]domain.FlightInventory, error) {
	return list[domain.FlightInventory](ctx, c, "flight_inventory", opts.params())
}

func (c *Client) ListCustomerPayments(ctx context.Context, opts ListOptions) ([]domain.CustomerPayments, error) {
	return list[domain.CustomerPayments](ctx, c, "customer_payments", opts.params())
}

func (c *Client) ListPaymentsOverview(ctx context.Context, opts ListOptions) ([]domain.PaymentsOverview, error) {
	return list[domain.PaymentsOverview](ctx, c, "payments_overview", opts.params())
}

func (c *Client) ListCustomerHotelPreferences(ctx context.Context, opts ListOptions) ([]domain.CustomerHotelPreferences, error) {
	return list[domain.CustomerHotelPreferences](ctx, c, "customer_hotel_preferences", opts.params())
}

func (c *Client) ListCustomerFlightPreferences(ctx context.Context, opts ListOptions) ([]domain.CustomerFlightPreferences, error) {
	return list[domain.CustomerFlightPreferences](ctx, c, "customer_flight_preferences", opts.params())
}

func (c *Client) ListCustomerFlightClass(ctx context.Context, opts ListOptions) ([]domain.CustomerFlightClass, error) {
	return list[domain.CustomerFlightClass](ctx, c, "customer_flight_class", opts.params())
}

func (c *Client) ListEvents(ctx context.Context, opts ListOptions) ([]domain.Events, error) {
	return list[domain.Events](ctx, c, "events", opts.params())
}

// Bulk export shortcuts

func (c *Client) GetBulkBookingItemsFile(ctx context.Context) ([]byte, error) {
	return c.GetBulkFile(ctx, "booking_item")
}

func (c *Client) GetBulkFlightOverviewFile(ctx context.Context) ([]byte, error) {
	return c.GetBulkFile(ctx, "flight_overview")
}

func (c *Client) GetBulkCustomerPaymentsFile(ctx context.Context) ([]byte, error) {
	return c.GetBulkFile(ctx, "customer_payments")
}

func (c *Client) GetBulkEventsFile(ctx context.Context) ([]byte, error) {
	return c.GetBulkFile(ctx, "events")
}
