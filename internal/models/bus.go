package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ============================================================================
// JSONB COLUMN TYPES
// ============================================================================

// StringList stores an ordered list of city names as JSONB
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, s)
}

// BoardingPoint is a named pickup/drop location on a route
type BoardingPoint struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Time    string `json:"time"` // 12-hour clock string, e.g. "9:30 AM"
	Contact string `json:"contact"`
}

// PointList stores boarding/dropping points as JSONB
type PointList []BoardingPoint

func (p PointList) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]BoardingPoint{})
	}
	return json.Marshal(p)
}

func (p *PointList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, p)
}

// Policies holds the cancellation rule text shown to passengers
type Policies struct {
	Cancellation        string `json:"cancellation"`
	PartialCancellation string `json:"partial_cancellation"`
}

func (p Policies) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Policies) Scan(value interface{}) error {
	if value == nil {
		*p = Policies{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, p)
}

// IntGrid is a deck seat grid: rows of fixed width 3, cell 0 = unoccupied
type IntGrid [][]int

func (g IntGrid) Value() (driver.Value, error) {
	if g == nil {
		return json.Marshal([][]int{})
	}
	return json.Marshal(g)
}

func (g *IntGrid) Scan(value interface{}) error {
	if value == nil {
		*g = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, g)
}

// StringGrid mirrors IntGrid with per-seat currency strings
type StringGrid [][]string

func (g StringGrid) Value() (driver.Value, error) {
	if g == nil {
		return json.Marshal([][]string{})
	}
	return json.Marshal(g)
}

func (g *StringGrid) Scan(value interface{}) error {
	if value == nil {
		*g = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, g)
}

// PricingTiers holds the four per-bus seat price tiers
type PricingTiers struct {
	LowerDeckPrice float64 `json:"lower_deck_price"`
	UpperDeckPrice float64 `json:"upper_deck_price"`
	LadiesPrice    float64 `json:"ladies_price"`
	ReservedPrice  float64 `json:"reserved_price"`
}

func (t PricingTiers) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *PricingTiers) Scan(value interface{}) error {
	if value == nil {
		*t = PricingTiers{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, t)
}

// ============================================================================
// BUS RECORD & SEAT CONFIG
// ============================================================================

// BusRecord is one scheduled vehicle/trip offering (buses collection)
type BusRecord struct {
	BusID          string     `json:"bus_id" db:"bus_id"`
	BusNumber      string     `json:"bus_number" db:"bus_number"`
	OperatorID     string     `json:"operator_id" db:"operator_id"`
	RouteCities    StringList `json:"route_cities" db:"route_cities"` // first = origin, last = destination
	StopCities     StringList `json:"stop_cities" db:"stop_cities"`
	DepartureTime  string     `json:"departure_time" db:"departure_time"` // 12-hour clock string
	ArrivalTime    string     `json:"arrival_time" db:"arrival_time"`     // 12-hour clock string
	Duration       string     `json:"duration" db:"duration"`             // derived, "Xh Ym"
	TotalSeats     int        `json:"total_seats" db:"total_seats"`       // derived, (lower+upper) rows x 3
	BoardingPoints PointList  `json:"boarding_points" db:"boarding_points"`
	DroppingPoints PointList  `json:"dropping_points" db:"dropping_points"`
	Policies       Policies   `json:"policies" db:"policies"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// SeatConfig is the seat grid and pricing paired with a BusRecord
// (bus_seats collection, shares the bus_id key)
type SeatConfig struct {
	BusID          string       `json:"bus_id" db:"bus_id"`
	LowerDeckRows  int          `json:"lower_deck_rows" db:"lower_deck_rows"`
	UpperDeckRows  int          `json:"upper_deck_rows" db:"upper_deck_rows"`
	LowerSeatGrid  IntGrid      `json:"lower_seat_grid" db:"lower_seat_grid"`
	UpperSeatGrid  IntGrid      `json:"upper_seat_grid" db:"upper_seat_grid"`
	LowerPriceGrid StringGrid   `json:"lower_price_grid" db:"lower_price_grid"`
	UpperPriceGrid StringGrid   `json:"upper_price_grid" db:"upper_price_grid"`
	PricingTiers   PricingTiers `json:"pricing_tiers" db:"pricing_tiers"`
	AvailableSeats int          `json:"available_seats" db:"available_seats"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// BusWithSeats joins a bus with its seat configuration for fleet screens.
// SeatConfig may be nil when the paired record is missing or unreadable.
type BusWithSeats struct {
	BusRecord
	SeatConfig *SeatConfig `json:"seat_config"`
}

// SubmitBusRequest carries the fleet form fields for create/update.
// Departure and arrival arrive in 24-hour "HH:MM" form from the form
// controls and are stored as 12-hour strings.
type SubmitBusRequest struct {
	BusID          *string         `json:"bus_id,omitempty"`
	BusNumber      string          `json:"bus_number" binding:"required"`
	RouteCities    []string        `json:"route_cities" binding:"required,min=1"`
	StopCities     []string        `json:"stop_cities"`
	DepartureTime  string          `json:"departure_time" binding:"required"`
	ArrivalTime    string          `json:"arrival_time" binding:"required"`
	LowerDeckRows  int             `json:"lower_deck_rows"`
	UpperDeckRows  int             `json:"upper_deck_rows"`
	Price          string          `json:"price"` // general base price, may be blank or non-numeric
	LowerDeckPrice *float64        `json:"lower_deck_price,omitempty"`
	UpperDeckPrice *float64        `json:"upper_deck_price,omitempty"`
	LadiesPrice    *float64        `json:"ladies_price,omitempty"`
	ReservedPrice  *float64        `json:"reserved_price,omitempty"`
	BoardingPoints []BoardingPoint `json:"boarding_points"`
	DroppingPoints []BoardingPoint `json:"dropping_points"`
	Policies       Policies        `json:"policies"`
}
