package domain

import "slices"

// QueryGroup names the business entity a query reports on
type QueryGroup string

const (
	GroupBooking  QueryGroup = "booking"
	GroupFlight   QueryGroup = "flight"
	GroupPayment  QueryGroup = "payment"
	GroupCustomer QueryGroup = "customer"
	GroupEvent    QueryGroup = "event"
	GroupCount    QueryGroup = "count"
)

// Booking status codes accepted by the status filter.
const (
	StatusPendingPayment = "PENDING_PAYMENT"
	StatusTicketed       = "TICKETED"
	StatusCancelled      = "CANCELLED"
	StatusConfirmed      = "CONFIRMED"
)

// BookingStatuses lists the recognized values of the status parameter.
var BookingStatuses = []string{StatusPendingPayment, StatusTicketed, StatusCancelled, StatusConfirmed}

// ParamDefinition describes one named parameter accepted by a query
type ParamDefinition struct {
	Name        string
	Default     string
	Allowed     []string
	Description string
}

// Recognized reports whether value is one of the documented values.
// Parameters without a documented set accept anything.
func (p ParamDefinition) Recognized(value string) bool {
	if len(p.Allowed) == 0 {
		return true
	}
	return slices.Contains(p.Allowed, value)
}

// QueryDefinition is a named analytical SQL template.
// Definitions are built once at startup and never mutated.
type QueryDefinition struct {
	Name        string
	Group       QueryGroup
	Summary     string
	Description string
	// Statement uses %(name)s placeholders for parameters
	Statement string
	Params    []ParamDefinition
}

// Param returns the parameter definition with the given name
func (q *QueryDefinition) Param(name string) (ParamDefinition, bool) {
	for _, p := range q.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamDefinition{}, false
}

// ParamNames returns the accepted parameter names in declaration order
func (q *QueryDefinition) ParamNames() []string {
	names := make([]string, len(q.Params))
	for i, p := range q.Params {
		names[i] = p.Name
	}
	return names
}

// OperationID is the stable identifier published in the API docs
func (q *QueryDefinition) OperationID() string {
	return "v0_get_" + q.Name
}

// Validate validates the query domain model
func (q *QueryDefinition) Validate() error {
	if q == nil {
		return ErrInvalidQuery
	}
	if q.Name == "" {
		return ErrInvalidQueryName
	}
	if q.Statement == "" {
		return ErrInvalidQueryStatement
	}
	return nil
}

// Domain errors
var (
	ErrInvalidQuery          = &DomainError{Message: "query cannot be nil"}
	ErrInvalidQueryName      = &DomainError{Message: "query name cannot be empty"}
	ErrInvalidQueryStatement = &DomainError{Message: "query statement cannot be empty"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
