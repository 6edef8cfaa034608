package catalog

import (
	"reflect"

	"github.com/wanderdata/wanderdata/core/domain"
)

var statusParam = domain.ParamDefinition{
	Name:        "status",
	Default:     domain.StatusConfirmed,
	Allowed:     domain.BookingStatuses,
	Description: "Filter bookings by status. Default is 'CONFIRMED'. Other options include 'PENDING_PAYMENT', 'TICKETED' and 'CANCELLED'.",
}

var bookingQueries = []entry{
	{
		def: &domain.QueryDefinition{
			Name:        "booking_item",
			Group:       domain.GroupBooking,
			Summary:     "Get booking items",
			Description: "Returns hotel bookings and revenue for one booking status.",
			Params:      []domain.ParamDefinition{statusParam},
			Statement: `
SELECT h.hotel_id, h.name, h.city, h.country,
    COUNT(DISTINCT b.booking_id) AS total_bookings,
    COUNT(DISTINCT b.customer_id) AS unique_customers,
    COALESCE(SUM(b.total_amount), 0) AS total_revenue,
    COALESCE(ROUND(AVG(b.total_amount)::NUMERIC, 2), 0) AS average_revenue
FROM travel.hotels h
JOIN travel.bookings b ON h.hotel_id = b.hotel_id
WHERE b.status = %(status)s
    AND b.booking_type = 'HOTEL'
GROUP BY h.hotel_id, h.name, h.city, h.country
ORDER BY total_revenue DESC, h.hotel_id`,
		},
		schema: reflect.TypeFor[domain.BookingItem](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "booking_revenue_status",
			Group:       domain.GroupBooking,
			Summary:     "Get booking revenue by status, price and pricing recommendation",
			Description: "Returns average booked amount per hotel and status compared with the listed nightly price.",
			Statement: `
WITH listed_prices AS (
    SELECT hp.hotel_id, AVG(hp.price_per_night) AS avg_price
    FROM travel.hotel_prices hp
    GROUP BY hp.hotel_id
),
status_bookings AS (
    SELECT b.hotel_id, b.status,
        COUNT(*) AS bookings_count,
        AVG(b.total_amount) AS avg_amount
    FROM travel.bookings b
    GROUP BY b.hotel_id, b.status
)
SELECT h.name, h.city, sb.status,
    lp.avg_price AS listed_price,
    sb.avg_amount AS total_amount,
    sb.bookings_count,
    CASE
        WHEN sb.avg_amount > lp.avg_price * 1.1 THEN 'PREMIUM_BOOKING'
        WHEN sb.avg_amount < lp.avg_price * 0.9 THEN 'DISCOUNTED'
        ELSE 'MARKET_RATE'
    END AS pricing_strategy,
    ROUND(((sb.avg_amount - lp.avg_price) / NULLIF(lp.avg_price, 0) * 100)::NUMERIC, 2) AS price_variance_percent
FROM listed_prices lp
JOIN status_bookings sb ON lp.hotel_id = sb.hotel_id
JOIN travel.hotels h ON lp.hotel_id = h.hotel_id
ORDER BY h.name DESC, sb.status`,
		},
		schema: reflect.TypeFor[domain.BookingRevenueStatus](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "booking_occupancy_rate",
			Group:       domain.GroupBooking,
			Summary:     "Get hotel occupancy rate",
			Description: "Returns the daily occupancy rate of each hotel with its nightly price and day-over-day growth.",
			Statement: `
SELECT h.hotel_id, h.name, h.city, i.date,
    i.allotment_total, i.allotment_sold,
    ROUND(i.allotment_sold::NUMERIC / NULLIF(i.allotment_total, 0) * 100, 2) AS occupancy_rate,
    hp.price_per_night,
    AVG(i.allotment_sold) OVER (
        PARTITION BY h.hotel_id ORDER BY i.date
        ROWS BETWEEN 3 PRECEDING AND 1 PRECEDING
    ) AS avg_last_3_days,
    LAG(i.allotment_sold) OVER (PARTITION BY h.hotel_id ORDER BY i.date) AS prev_day_sold,
    CASE
        WHEN LAG(i.allotment_sold) OVER (PARTITION BY h.hotel_id ORDER BY i.date) > 0
        THEN ROUND(
            (i.allotment_sold - LAG(i.allotment_sold) OVER (PARTITION BY h.hotel_id ORDER BY i.date))::NUMERIC
            / LAG(i.allotment_sold) OVER (PARTITION BY h.hotel_id ORDER BY i.date) * 100, 2)
    END AS daily_growth_percent
FROM travel.inventory i
JOIN travel.hotels h ON i.hotel_id = h.hotel_id
LEFT JOIN travel.hotel_prices hp ON i.hotel_id = hp.hotel_id AND i.date = hp.date
ORDER BY h.hotel_id, i.date`,
		},
		schema: reflect.TypeFor[domain.OccupancyRate](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "revenue_performance",
			Group:       domain.GroupBooking,
			Summary:     "Get hotel revenue performance",
			Description: "Ranks every hotel by the revenue of its bookings in one status and assigns a revenue segment.",
			Params:      []domain.ParamDefinition{statusParam},
			Statement: `
WITH status_revenue AS (
    SELECT b.hotel_id,
        COUNT(b.booking_id) AS daily_bookings,
        SUM(b.total_amount) AS total_amount,
        AVG(b.total_amount) AS average_amount
    FROM travel.bookings b
    WHERE b.status = %(status)s
    GROUP BY b.hotel_id
),
ranked_hotels AS (
    SELECT h.hotel_id, h.name, h.city, h.stars,
        COALESCE(sr.daily_bookings, 0) AS daily_bookings,
        COALESCE(sr.total_amount, 0) AS total_amount,
        COALESCE(ROUND(sr.average_amount::NUMERIC, 2), 0) AS average_amount,
        ROW_NUMBER() OVER (ORDER BY COALESCE(sr.total_amount, 0) DESC, h.hotel_id) AS revenue_rank,
        PERCENT_RANK() OVER (ORDER BY COALESCE(sr.total_amount, 0)) AS revenue_percentage
    FROM travel.hotels h
    LEFT JOIN status_revenue sr ON h.hotel_id = sr.hotel_id
)
SELECT rh.hotel_id, rh.name, rh.city, rh.stars, rh.daily_bookings,
    rh.total_amount, rh.average_amount, rh.revenue_rank, rh.revenue_percentage,
    CASE
        WHEN rh.revenue_percentage >= 0.8 THEN 'TOP_20%'
        WHEN rh.revenue_percentage >= 0.5 THEN 'MIDDLE_50%'
        ELSE 'BOTTOM_30%'
    END AS revenue_segment
FROM ranked_hotels rh
ORDER BY rh.revenue_rank`,
		},
		schema: reflect.TypeFor[domain.RevenuePerformance](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "optimized_revenue",
			Group:       domain.GroupBooking,
			Summary:     "Get hotel pricing recommendations",
			Description: "Returns hotel availability per day with a price recommendation and the revenue it would produce.",
			Statement: `
WITH availability AS (
    SELECT i.hotel_id, h.name, i.date,
        i.allotment_total, i.allotment_sold,
        i.allotment_total - i.allotment_sold AS available,
        hp.price_per_night
    FROM travel.inventory i
    JOIN travel.hotels h ON i.hotel_id = h.hotel_id
    LEFT JOIN travel.hotel_prices hp ON i.hotel_id = hp.hotel_id AND i.date = hp.date
),
priced AS (
    SELECT a.*,
        CASE
            WHEN a.available <= 2 THEN 'INCREASE PRICE +20%'
            WHEN a.available >= 10 THEN 'SPECIAL OFFER -15%'
            WHEN a.available = a.allotment_total THEN 'LAST BOOKING -30%'
            ELSE 'SAME PRICE'
        END AS recommendation,
        CASE
            WHEN a.available <= 2 THEN 1.2
            WHEN a.available >= 10 THEN 0.85
            WHEN a.available = a.allotment_total THEN 0.7
            ELSE 1.0
        END AS factor
    FROM availability a
)
SELECT p.hotel_id, p.name, p.date,
    p.allotment_total, p.allotment_sold, p.available,
    p.price_per_night, p.recommendation,
    ROUND((p.price_per_night * p.factor)::NUMERIC, 2) AS suggested_price_eur,
    ROUND((p.price_per_night * p.factor * p.available)::NUMERIC, 2) AS potential_revenue_eur
FROM priced p
ORDER BY p.date, p.name, p.hotel_id`,
		},
		schema: reflect.TypeFor[domain.OptimizedRevenue](),
	},
}
