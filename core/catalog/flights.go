package catalog

import (
	"reflect"

	"github.com/wanderdata/wanderdata/core/domain"
)

var flightQueries = []entry{
	{
		def: &domain.QueryDefinition{
			Name:        "flight_overview",
			Group:       domain.GroupFlight,
			Summary:     "Get flight overview",
			Description: "Returns every flight with its route and aircraft.",
			Statement: `
SELECT f.flight_id, f.origin, f.destination,
    a.model, a.manufacturer, a.seats_total
FROM travel.flights f
LEFT JOIN travel.aircraft a ON f.aircraft_code = a.aircraft_code
ORDER BY f.departure_ts, f.flight_id`,
		},
		schema: reflect.TypeFor[domain.FlightOverview](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "flight_prices",
			Group:       domain.GroupFlight,
			Summary:     "Get flight prices",
			Description: "Returns fare statistics per route ranked by the number of flights booked.",
			Statement: `
SELECT f.origin, f.destination,
    COUNT(DISTINCT f.flight_id) AS total_flights,
    MIN(p.total_fare) AS min_price,
    MAX(p.total_fare) AS max_price,
    PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY p.total_fare) AS median_price,
    ROW_NUMBER() OVER (ORDER BY COUNT(DISTINCT f.flight_id) DESC, f.origin, f.destination) AS popularity_rank
FROM travel.flights f
JOIN travel.booking_items b ON f.flight_id = b.flight_id
JOIN travel.prices p ON p.price_id = b.price_id
GROUP BY f.origin, f.destination
ORDER BY popularity_rank`,
		},
		schema: reflect.TypeFor[domain.FlightPrices](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "flight_popularity",
			Group:       domain.GroupFlight,
			Summary:     "Get flight popularity",
			Description: "Ranks route and cabin class combinations by flights taken, with the average fare paid.",
			Statement: `
WITH route_class AS (
    SELECT f.origin, f.destination, b.cabin_class,
        COUNT(DISTINCT f.flight_id) AS flights_taken,
        AVG(p.total_fare) AS avg_spent
    FROM travel.booking_items b
    JOIN travel.flights f ON b.flight_id = f.flight_id
    LEFT JOIN travel.prices p ON p.price_id = b.price_id
    GROUP BY f.origin, f.destination, b.cabin_class
)
SELECT rc.origin, rc.destination, rc.cabin_class,
    COALESCE(ROUND(rc.avg_spent::NUMERIC, 2), 0) AS average_customer_spend,
    ROW_NUMBER() OVER (ORDER BY rc.flights_taken DESC, rc.origin, rc.destination, rc.cabin_class) AS popularity_rank
FROM route_class rc
ORDER BY popularity_rank`,
		},
		schema: reflect.TypeFor[domain.FlightPopularity](),
	},
	{
		def: &domain.QueryDefinition{
			Name:        "flight_inventory",
			Group:       domain.GroupFlight,
			Summary:     "Get flight inventory",
			Description: "Returns seat inventory per flight and fare with the share of fares priced below the flight average.",
			Statement: `
WITH fares AS (
    SELECT f.flight_id, f.origin, f.destination,
        fi.inventory_id, fi.seats_available,
        p.price_id, p.total_fare,
        AVG(p.total_fare) OVER (PARTITION BY f.flight_id) AS flight_avg,
        AVG(p.total_fare) OVER (PARTITION BY f.destination) AS destination_avg
    FROM travel.flights f
    JOIN travel.flight_inventory fi ON f.flight_id = fi.flight_id
    LEFT JOIN travel.prices p ON fi.inventory_id = p.inventory_id
)
SELECT fa.flight_id, fa.inventory_id, fa.price_id,
    fa.origin, fa.destination, fa.total_fare,
    ROUND(fa.flight_avg::NUMERIC, 2) AS average_fare_for_flight,
    SUM(fa.seats_available) AS seats_available,
    ROUND(fa.destination_avg::NUMERIC, 2) AS average_fare_for_destination,
    SUM(CASE WHEN fa.total_fare < fa.flight_avg THEN 1 ELSE 0 END) AS below_avg_price,
    SUM(CASE WHEN fa.total_fare > fa.flight_avg THEN 1 ELSE 0 END) AS above_avg_price,
    ROUND(SUM(CASE WHEN fa.total_fare < fa.flight_avg THEN 1 ELSE 0 END)::NUMERIC / COUNT(*) * 100, 2) AS percent_below_avg
FROM fares fa
GROUP BY fa.flight_id, fa.inventory_id, fa.price_id, fa.origin, fa.destination,
    fa.total_fare, fa.flight_avg, fa.destination_avg
ORDER BY fa.flight_id, fa.inventory_id, fa.price_id`,
		},
		schema: reflect.TypeFor[domain.FlightInventory](),
	},
}
