// Package seed holds a small travel dataset used to run the catalog against
// an embedded store, for demos and end-to-end tests.
package seed

import (
	"context"
	"fmt"
)

// Execer runs statements that return no rows
type Execer interface {
	Exec(ctx context.Context, statement string, args ...any) error
}

// Schema creates the travel namespace and its tables
var Schema = []string{
	`CREATE SCHEMA IF NOT EXISTS travel`,
	`CREATE TABLE travel.hotels (
		hotel_id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		city VARCHAR NOT NULL,
		country VARCHAR NOT NULL,
		stars INTEGER NOT NULL
	)`,
	`CREATE TABLE travel.customers (
		customer_id BIGINT PRIMARY KEY,
		loyalty_id VARCHAR
	)`,
	`CREATE TABLE travel.bookings (
		booking_id VARCHAR PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		hotel_id VARCHAR,
		booking_type VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		total_amount DOUBLE NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE travel.hotel_prices (
		hotel_id VARCHAR NOT NULL,
		date DATE NOT NULL,
		price_per_night DOUBLE NOT NULL
	)`,
	`CREATE TABLE travel.inventory (
		hotel_id VARCHAR NOT NULL,
		date DATE NOT NULL,
		allotment_total INTEGER NOT NULL,
		allotment_sold INTEGER NOT NULL
	)`,
	`CREATE TABLE travel.aircraft (
		aircraft_code VARCHAR PRIMARY KEY,
		model VARCHAR,
		manufacturer VARCHAR,
		seats_total INTEGER
	)`,
	`CREATE TABLE travel.flights (
		flight_id VARCHAR PRIMARY KEY,
		flight_number VARCHAR NOT NULL,
		origin VARCHAR NOT NULL,
		destination VARCHAR NOT NULL,
		aircraft_code VARCHAR,
		departure_ts TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE travel.flight_inventory (
		inventory_id VARCHAR PRIMARY KEY,
		flight_id VARCHAR NOT NULL,
		fare_family_id VARCHAR NOT NULL,
		seats_available INTEGER NOT NULL
	)`,
	`CREATE TABLE travel.prices (
		price_id VARCHAR PRIMARY KEY,
		inventory_id VARCHAR NOT NULL,
		total_fare DOUBLE NOT NULL
	)`,
	`CREATE TABLE travel.booking_items (
		item_id VARCHAR PRIMARY KEY,
		booking_id VARCHAR NOT NULL,
		customer_id BIGINT NOT NULL,
		flight_id VARCHAR NOT NULL,
		price_id VARCHAR NOT NULL,
		cabin_class VARCHAR NOT NULL
	)`,
	`CREATE TABLE travel.payments (
		payment_id VARCHAR PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		booking_id VARCHAR NOT NULL,
		method VARCHAR NOT NULL,
		amount DOUBLE NOT NULL,
		status VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE travel.events (
		event_id VARCHAR PRIMARY KEY,
		event_name VARCHAR NOT NULL,
		city VARCHAR NOT NULL,
		customer_id BIGINT NOT NULL,
		price_event DOUBLE NOT NULL
	)`,
}

// Data fills the tables created by Schema
var Data = []string{
	`INSERT INTO travel.hotels VALUES
		('H1', 'Sea View', 'Lisbon', 'Portugal', 4),
		('H2', 'Old Town Inn', 'Porto', 'Portugal', 3),
		('H3', 'Harbour Hotel', 'Faro', 'Portugal', 5)`,
	`INSERT INTO travel.customers VALUES
		(1, 'GOLD-1'),
		(2, NULL),
		(3, 'SILVER-3'),
		(4, NULL)`,
	`INSERT INTO travel.bookings VALUES
		('B1', 1, 'H1', 'HOTEL', 'CONFIRMED', 300, TIMESTAMP '2024-01-02 10:00:00'),
		('B2', 2, 'H1', 'HOTEL', 'CONFIRMED', 500, TIMESTAMP '2024-01-05 09:30:00'),
		('B3', 1, 'H2', 'HOTEL', 'CANCELLED', 200, TIMESTAMP '2024-01-06 18:00:00'),
		('B4', 3, 'H2', 'HOTEL', 'CONFIRMED', 150, TIMESTAMP '2024-02-01 08:15:00'),
		('B5', 2, NULL, 'FLIGHT', 'TICKETED', 420, TIMESTAMP '2024-02-03 11:45:00'),
		('B6', 3, 'H3', 'HOTEL', 'PENDING_PAYMENT', 800, TIMESTAMP '2024-02-10 20:00:00')`,
	`INSERT INTO travel.hotel_prices VALUES
		('H1', DATE '2024-03-01', 120),
		('H1', DATE '2024-03-02', 130),
		('H2', DATE '2024-03-01', 80),
		('H3', DATE '2024-03-01', 200)`,
	`INSERT INTO travel.inventory VALUES
		('H1', DATE '2024-03-01', 10, 4),
		('H1', DATE '2024-03-02', 10, 9),
		('H2', DATE '2024-03-01', 12, 0),
		('H3', DATE '2024-03-01', 20, 5)`,
	`INSERT INTO travel.aircraft VALUES
		('A320', 'A320neo', 'Airbus', 180),
		('B738', '737-800', 'Boeing', 189)`,
	`INSERT INTO travel.flights VALUES
		('F1', 'WD100', 'LIS', 'MAD', 'A320', TIMESTAMP '2024-03-01 08:00:00'),
		('F2', 'WD200', 'LIS', 'LHR', 'B738', TIMESTAMP '2024-03-01 12:00:00'),
		('F3', 'WD101', 'LIS', 'MAD', 'A320', TIMESTAMP '2024-03-02 08:00:00'),
		('F4', 'WD300', 'OPO', 'CDG', 'E190', TIMESTAMP '2024-03-02 15:30:00')`,
	`INSERT INTO travel.flight_inventory VALUES
		('I1', 'F1', 'BASIC', 50),
		('I2', 'F1', 'PLUS', 20),
		('I3', 'F2', 'BASIC', 60),
		('I4', 'F3', 'BASIC', 40),
		('I5', 'F4', 'BASIC', 30)`,
	`INSERT INTO travel.prices VALUES
		('P1', 'I1', 90),
		('P2', 'I2', 150),
		('P3', 'I3', 120),
		('P4', 'I4', 80),
		('P5', 'I5', 110)`,
	`INSERT INTO travel.booking_items VALUES
		('BI1', 'B5', 2, 'F1', 'P1', 'ECONOMY'),
		('BI2', 'B5', 2, 'F2', 'P3', 'ECONOMY'),
		('BI3', 'B1', 1, 'F1', 'P2', 'BUSINESS'),
		('BI4', 'B4', 3, 'F3', 'P4', 'ECONOMY')`,
	`INSERT INTO travel.payments VALUES
		('PM1', 1, 'B1', 'CARD', 300, 'CONFIRMED', TIMESTAMP '2024-01-04 10:00:00'),
		('PM2', 2, 'B2', 'PAYPAL', 500, 'CONFIRMED', TIMESTAMP '2024-01-06 09:30:00'),
		('PM3', 2, 'B5', 'CARD', 420, 'FAILED', TIMESTAMP '2024-02-03 11:50:00'),
		('PM4', 3, 'B4', 'CARD', 150, 'CONFIRMED', TIMESTAMP '2024-02-02 08:15:00')`,
	`INSERT INTO travel.events VALUES
		('E1', 'Fado Night', 'Lisbon', 1, 35),
		('E2', 'Fado Night', 'Lisbon', 2, 35),
		('E3', 'Wine Tour', 'Porto', 1, 60),
		('E4', 'Wine Tour', 'Porto', 3, 60)`,
}

// Load creates the travel schema and fills it with the sample dataset
func Load(ctx context.Context, db Execer) error {
	for _, group := range [][]string{Schema, Data} {
		for i, statement := range group {
			if err := db.Exec(ctx, statement); err != nil {
				return fmt.Errorf("seed statement %d: %w", i, err)
			}
		}
	}
	return nil
}
