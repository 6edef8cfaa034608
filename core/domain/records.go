package domain

// Response records published by the API. The col tag names the result column
// each field is projected from; pointer fields are nullable.

// BookingItem summarizes hotel bookings in one status
type BookingItem struct {
	HotelID         string  `col:"hotel_id" json:"hotel_id"`
	Name            string  `col:"name" json:"name"`
	City            string  `col:"city" json:"city"`
	Country         string  `col:"country" json:"country"`
	TotalBookings   int64   `col:"total_bookings" json:"total_bookings"`
	UniqueCustomers int64   `col:"unique_customers" json:"unique_customers"`
	TotalRevenue    float64 `col:"total_revenue" json:"total_revenue"`
	AverageRevenue  float64 `col:"average_revenue" json:"average_revenue"`
}

// BookingRevenueStatus compares booked amounts with listed prices per hotel and status
type BookingRevenueStatus struct {
	Name                 string   `col:"name" json:"name"`
	City                 string   `col:"city" json:"city"`
	Status               string   `col:"status" json:"status"`
	ListedPrice          float64  `col:"listed_price" json:"listed_price"`
	TotalAmount          float64  `col:"total_amount" json:"total_amount"`
	BookingsCount        int64    `col:"bookings_count" json:"bookings_count"`
	PricingStrategy      string   `col:"pricing_strategy" json:"pricing_strategy"`
	PriceVariancePercent *float64 `col:"price_variance_percent" json:"price_variance_percent"`
}

// OccupancyRate is the daily occupancy of one hotel
type OccupancyRate struct {
	HotelID            string   `col:"hotel_id" json:"hotel_id"`
	Name               string   `col:"name" json:"name"`
	City               string   `col:"city" json:"city"`
	Date               string   `col:"date" json:"date"`
	AllotmentTotal     int64    `col:"allotment_total" json:"allotment_total"`
	AllotmentSold      int64    `col:"allotment_sold" json:"allotment_sold"`
	OccupancyRate      *float64 `col:"occupancy_rate" json:"occupancy_rate"`
	PricePerNight      *float64 `col:"price_per_night" json:"price_per_night"`
	AvgLast3Days       *float64 `col:"avg_last_3_days" json:"avg_last_3_days"`
	PrevDaySold        *int64   `col:"prev_day_sold" json:"prev_day_sold"`
	DailyGrowthPercent *float64 `col:"daily_growth_percent" json:"daily_growth_percent"`
}

// RevenuePerformance ranks hotels by revenue in one booking status
type RevenuePerformance struct {
	HotelID           string  `col:"hotel_id" json:"hotel_id"`
	Name              string  `col:"name" json:"name"`
	City              string  `col:"city" json:"city"`
	Stars             int64   `col:"stars" json:"stars"`
	DailyBookings     int64   `col:"daily_bookings" json:"daily_bookings"`
	TotalAmount       float64 `col:"total_amount" json:"total_amount"`
	AverageAmount     float64 `col:"average_amount" json:"average_amount"`
	RevenueRank       int64   `col:"revenue_rank" json:"revenue_rank"`
	RevenuePercentage float64 `col:"revenue_percentage" json:"revenue_percentage"`
	RevenueSegment    string  `col:"revenue_segment" json:"revenue_segment"`
}

// OptimizedRevenue carries a pricing recommendation for one hotel day
type OptimizedRevenue struct {
	HotelID             string   `col:"hotel_id" json:"hotel_id"`
	Name                string   `col:"name" json:"name"`
	Date                string   `col:"date" json:"date"`
	AllotmentTotal      int64    `col:"allotment_total" json:"allotment_total"`
	AllotmentSold       int64    `col:"allotment_sold" json:"allotment_sold"`
	Available           int64    `col:"available" json:"available"`
	PricePerNight       *float64 `col:"price_per_night" json:"price_per_night"`
	Recommendation      string   `col:"recommendation" json:"recommendation"`
	SuggestedPriceEUR   *float64 `col:"suggested_price_eur" json:"suggested_price_eur"`
	PotentialRevenueEUR *float64 `col:"potential_revenue_eur" json:"potential_revenue_eur"`
}

// FlightOverview lists one flight and its aircraft
type FlightOverview struct {
	FlightID     string  `col:"flight_id" json:"flight_id"`
	Origin       string  `col:"origin" json:"origin"`
	Destination  string  `col:"destination" json:"destination"`
	Model        *string `col:"model" json:"model"`
	Manufacturer *string `col:"manufacturer" json:"manufacturer"`
	SeatsTotal   *int64  `col:"seats_total" json:"seats_total"`
}

// FlightPrices holds fare statistics per route
type FlightPrices struct {
	Origin         string  `col:"origin" json:"origin"`
	Destination    string  `col:"destination" json:"destination"`
	TotalFlights   int64   `col:"total_flights" json:"total_flights"`
	MinPrice       float64 `col:"min_price" json:"min_price"`
	MaxPrice       float64 `col:"max_price" json:"max_price"`
	MedianPrice    float64 `col:"median_price" json:"median_price"`
	PopularityRank int64   `col:"popularity_rank" json:"popularity_rank"`
}

// FlightPopularity ranks routes and cabin classes by flights taken
type FlightPopularity struct {
	Origin               string  `col:"origin" json:"origin"`
	Destination          string  `col:"destination" json:"destination"`
	CabinClass           string  `col:"cabin_class" json:"cabin_class"`
	AverageCustomerSpend float64 `col:"average_customer_spend" json:"average_customer_spend"`
	PopularityRank       int64   `col:"popularity_rank" json:"popularity_rank"`
}

// FlightInventory summarizes seat inventory and fares per flight
type FlightInventory struct {
	FlightID                  string   `col:"flight_id" json:"flight_id"`
	InventoryID               string   `col:"inventory_id" json:"inventory_id"`
	PriceID                   *string  `col:"price_id" json:"price_id"`
	Origin                    string   `col:"origin" json:"origin"`
	Destination               string   `col:"destination" json:"destination"`
	TotalFare                 *float64 `col:"total_fare" json:"total_fare"`
	AverageFareForFlight      *float64 `col:"average_fare_for_flight" json:"average_fare_for_flight"`
	SeatsAvailable            int64    `col:"seats_available" json:"seats_available"`
	AverageFareForDestination *float64 `col:"average_fare_for_destination" json:"average_fare_for_destination"`
	BelowAvgPrice             int64    `col:"below_avg_price" json:"below_avg_price"`
	AboveAvgPrice             int64    `col:"above_avg_price" json:"above_avg_price"`
	PercentBelowAvg           float64  `col:"percent_below_avg" json:"percent_below_avg"`
}

// CustomerPayments segments customers by confirmed spend
type CustomerPayments struct {
	ValueSegment      string   `col:"value_segment" json:"value_segment"`
	CustomerID        int64    `col:"customer_id" json:"customer_id"`
	LoyaltyID         *string  `col:"loyalty_id" json:"loyalty_id"`
	AverageSpent      float64  `col:"average_spent" json:"average_spent"`
	SegmentRevenue    float64  `col:"segment_revenue" json:"segment_revenue"`
	RevenuePercentage *float64 `col:"revenue_percentage" json:"revenue_percentage"`
}

// PaymentsOverview aggregates payments per month, method, customer and booking type
type PaymentsOverview struct {
	PaymentMonth       int64    `col:"payment_month" json:"payment_month"`
	Method             string   `col:"method" json:"method"`
	CustomerID         int64    `col:"customer_id" json:"customer_id"`
	BookingType        string   `col:"booking_type" json:"booking_type"`
	PaymentCount       int64    `col:"payment_count" json:"payment_count"`
	TotalBookings      int64    `col:"total_bookings" json:"total_bookings"`
	TotalPayments      float64  `col:"total_payments" json:"total_payments"`
	BookedAmount       float64  `col:"booked_amount" json:"booked_amount"`
	AvgDaysToPay       *float64 `col:"avg_days_to_pay" json:"avg_days_to_pay"`
	FailureRatePercent float64  `col:"failure_rate_percent" json:"failure_rate_percent"`
}

// CustomerHotelPreferences counts confirmed hotel bookings per customer
type CustomerHotelPreferences struct {
	Name          string  `col:"name" json:"name"`
	City          string  `col:"city" json:"city"`
	Country       string  `col:"country" json:"country"`
	CustomerID    int64   `col:"customer_id" json:"customer_id"`
	BookingType   string  `col:"booking_type" json:"booking_type"`
	TotalBookings int64   `col:"total_bookings" json:"total_bookings"`
	TotalRevenue  float64 `col:"total_revenue" json:"total_revenue"`
}

// CustomerFlightPreferences holds fare statistics per customer destination
type CustomerFlightPreferences struct {
	Destination  string  `col:"destination" json:"destination"`
	TotalFlights int64   `col:"total_flights" json:"total_flights"`
	MaxPrice     float64 `col:"max_price" json:"max_price"`
	MedianPrice  float64 `col:"median_price" json:"median_price"`
	CustomerID   int64   `col:"customer_id" json:"customer_id"`
	LoyaltyID    *string `col:"loyalty_id" json:"loyalty_id"`
}

// CustomerFlightClass counts trips per customer, destination and cabin class
type CustomerFlightClass struct {
	DestinationTrips int64   `col:"destination_trips" json:"destination_trips"`
	Destination      string  `col:"destination" json:"destination"`
	AveragePrice     float64 `col:"average_price" json:"average_price"`
	CustomerID       int64   `col:"customer_id" json:"customer_id"`
	CabinClass       string  `col:"cabin_class" json:"cabin_class"`
}

// Events summarizes attendance and revenue per event and city
type Events struct {
	EventName           string  `col:"event_name" json:"event_name"`
	City                string  `col:"city" json:"city"`
	CustomersAssistance int64   `col:"customers_assistance" json:"customers_assistance"`
	AveragePrice        float64 `col:"average_price" json:"average_price"`
	TotalRevenue        float64 `col:"total_revenue" json:"total_revenue"`
}

// CountResult is the single scalar produced by a count query
type CountResult struct {
	Count int64 `col:"count" json:"count"`
}

// Counts is the aggregate of the five entity count queries
type Counts struct {
	HotelCount    int64 `json:"hotel_count"`
	FlightCount   int64 `json:"flight_count"`
	CustomerCount int64 `json:"customer_count"`
	PaymentCount  int64 `json:"payment_count"`
	EventsCount   int64 `json:"events_count"`
}
