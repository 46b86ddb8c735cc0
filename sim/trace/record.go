// Package trace provides observation recording for store runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "time"

// MovementRecord captures one customer observation.
type MovementRecord struct {
	CustomerID int       `yaml:"customer_id"`
	Tick       int64     `yaml:"tick"`
	Time       time.Time `yaml:"time"`
	Location   string    `yaml:"location"`
	Kind       string    `yaml:"kind"` // position, departure or evacuation
}

// TickRecord captures the state of the store at the end of one tick.
type TickRecord struct {
	Tick           int64          `yaml:"tick"`
	Admitted       int            `yaml:"admitted"`
	Active         map[string]int `yaml:"active"` // aisle -> active customers
	TotalCustomers int            `yaml:"total_customers"`
}

// ClosingRecord captures one end-of-day summary.
type ClosingRecord struct {
	Store          string    `yaml:"store"`
	RunID          string    `yaml:"run_id"`
	Tick           int64     `yaml:"tick"`
	Time           time.Time `yaml:"time"`
	TotalCustomers int       `yaml:"total_customers"`
	Evacuated      int       `yaml:"evacuated"`
}
