package catalog

import (
	"reflect"

	"github.com/wanderdata/wanderdata/core/domain"
)

var customerQueries = []entry{
	{
		def: &domain.QueryDefinition{
			Name:        "customer_hotel_preferences",
			Group:       domain.GroupCustomer,
			Summary:     "Get customer hotel preferences",
			Description: "Returns confirmed bookings and revenue per customer and hotel.",
			Statement: `
SELECT h.name, h.city, h.country, b.customer_id, b.booking_type,
    COUNT(DISTINCT b.booking_id) AS total_bookings,
    SUM(b.total_amount) AS total_revenue
FROM travel.hotels h
JOIN travel.bookings b ON h.hotel_id = b.hotel_id
WHERE b.status = 'CONFIRMED'
GROUP BY h.name, h.city, h.country, b.customer_id, b.booking_type
ORDER BY total_revenue DESC, b.customer_id, h.name`,
		},
		schema: reflect.TypeFor[domain.CustomerHotelPreferences](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "customer_flight_preferences",
			Group:       domain.GroupCustomer,
			Summary:     "Get customer flight preferences",
			Description: "Returns flights and fare statistics per customer and destination.",
			Statement: `
SELECT f.destination,
    COUNT(DISTINCT f.flight_id) AS total_flights,
    MAX(p.total_fare) AS max_price,
    PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY p.total_fare) AS median_price,
    b.customer_id, c.loyalty_id
FROM travel.flights f
JOIN travel.booking_items b ON f.flight_id = b.flight_id
JOIN travel.prices p ON p.price_id = b.price_id
JOIN travel.customers c ON c.customer_id = b.customer_id
GROUP BY f.destination, b.customer_id, c.loyalty_id
ORDER BY b.customer_id, f.destination`,
		},
		schema: reflect.TypeFor[domain.CustomerFlightPreferences](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "customer_flight_class",
			Group:       domain.GroupCustomer,
			Summary:     "Get customer flight class",
			Description: "Returns trips and average fare per customer, destination and cabin class.",
			Statement: `
SELECT COUNT(f.destination) AS destination_trips, f.destination,
    AVG(p.total_fare) AS average_price,
    b.customer_id, b.cabin_class
FROM travel.flights f
JOIN travel.booking_items b ON f.flight_id = b.flight_id
JOIN travel.prices p ON p.price_id = b.price_id
GROUP BY f.destination, b.customer_id, b.cabin_class
ORDER BY destination_trips DESC, b.customer_id, f.destination, b.cabin_class`,
		},
		schema: reflect.TypeFor[domain.CustomerFlightClass](),
	},
}
