package catalog

import (
	"reflect"

	"github.com/wanderdata/wanderdata/core/domain"
)

var eventQueries = []entry{
	{
		def: &domain.QueryDefinition{
			Name:        "events",
			Group:       domain.GroupEvent,
			Summary:     "Get events",
			Description: "Returns attendance and revenue per event and city.",
			Statement: `
SELECT e.event_name, e.city,
    COUNT(e.customer_id) AS customers_assistance,
    AVG(e.price_event) AS average_price,
    SUM(e.price_event) AS total_revenue
FROM travel.events e
GROUP BY e.event_name, e.city
ORDER BY e.event_name, e.city`,
		},
		schema: reflect.TypeFor[domain.Events](),
	},
}

// Names of the scalar count queries aggregated into domain.Counts
const (
	HotelCount    = "hotel_count"
	FlightCount   = "flight_count"
	CustomerCount = "customer_count"
	PaymentCount  = "payment_count"
	EventsCount   = "events_count"
)

// CountNames lists the count queries in the order they are run
var CountNames = []string{HotelCount, FlightCount, CustomerCount, PaymentCount, EventsCount}

func countQuery(name, summary, statement string) entry {
	return entry{
		def: &domain.QueryDefinition{
			Name:      name,
			Group:     domain.GroupCount,
			Summary:   summary,
			Statement: statement,
		},
		schema: reflect.TypeFor[domain.CountResult](),
	}
}

var countQueries = []entry{
	countQuery(HotelCount, "Number of hotels", `SELECT COUNT(*) AS count FROM travel.hotels`),
	countQuery(FlightCount, "Number of flights", `SELECT COUNT(*) AS count FROM travel.flights`),
	countQuery(CustomerCount, "Number of customers", `SELECT COUNT(*) AS count FROM travel.customers`),
	countQuery(PaymentCount, "Number of paying customers", `SELECT COUNT(DISTINCT customer_id) AS count FROM travel.payments`),
	countQuery(EventsCount, "Number of event attendees", `SELECT COUNT(DISTINCT customer_id) AS count FROM travel.events`),
}
