package catalog

import (
	"reflect"

	"github.com/wanderdata/wanderdata/core/domain"
)

var paymentQueries = []entry{
	{
		def: &domain.QueryDefinition{
			Name:        "customer_payments",
			Group:       domain.GroupPayment,
			Summary:     "Get customer payments",
			Description: "Returns confirmed spend per customer classified by value segment: NEW, REGULAR, PREMIUM or VIP.",
			Statement: `
WITH customer_spending AS (
    SELECT c.customer_id, c.loyalty_id,
        COUNT(DISTINCT p.payment_id) AS total_payments,
        SUM(p.amount) AS total_spent_eur,
        AVG(p.amount) AS avg_payment_eur
    FROM travel.customers c
    JOIN travel.payments p ON c.customer_id = p.customer_id
    WHERE p.status = 'CONFIRMED'
    GROUP BY c.customer_id, c.loyalty_id
),
customer_segments AS (
    SELECT cs.*,
        CASE
            WHEN cs.total_spent_eur > 1000 THEN 'VIP'
            WHEN cs.total_spent_eur > 500 THEN 'PREMIUM'
            WHEN cs.total_spent_eur > 100 THEN 'REGULAR'
            ELSE 'NEW'
        END AS value_segment
    FROM customer_spending cs
)
SELECT sg.value_segment, sg.customer_id, sg.loyalty_id,
    ROUND(AVG(sg.avg_payment_eur)::NUMERIC, 2) AS average_spent,
    ROUND(SUM(sg.total_spent_eur)::NUMERIC, 2) AS segment_revenue,
    ROUND((SUM(sg.total_spent_eur) / NULLIF(SUM(SUM(sg.total_spent_eur)) OVER (), 0) * 100)::NUMERIC, 2) AS revenue_percentage
FROM customer_segments sg
GROUP BY sg.value_segment, sg.customer_id, sg.loyalty_id
ORDER BY segment_revenue DESC, sg.customer_id`,
		},
		schema: reflect.TypeFor[domain.CustomerPayments](),
	},
	{
		// payment_month is the numeric month; no month-name column is produced
		def: &domain.QueryDefinition{
			Name:        "payments_overview",
			Group:       domain.GroupPayment,
			Summary:     "Get payments overview",
			Description: "Returns payments per month, method, customer and booking type with amounts and failure rate.",
			Statement: `
SELECT DATE_PART('month', p.created_at) AS payment_month,
    p.method, p.customer_id, b.booking_type,
    COUNT(DISTINCT p.payment_id) AS payment_count,
    COUNT(DISTINCT b.booking_id) AS total_bookings,
    SUM(p.amount) AS total_payments,
    SUM(b.total_amount) AS booked_amount,
    AVG(DATE_PART('day', p.created_at - b.created_at)) AS avg_days_to_pay,
    ROUND(SUM(CASE WHEN p.status = 'FAILED' THEN 1 ELSE 0 END)::NUMERIC / COUNT(*) * 100, 2) AS failure_rate_percent
FROM travel.payments p
JOIN travel.customers c ON p.customer_id = c.customer_id
JOIN travel.bookings b ON c.customer_id = b.customer_id
GROUP BY DATE_PART('month', p.created_at), p.method, p.customer_id, b.booking_type
ORDER BY payment_month DESC, total_payments DESC, p.method, p.customer_id, b.booking_type`,
		},
		schema: reflect.TypeFor[domain.PaymentsOverview](),
	},
}
