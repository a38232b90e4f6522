package models

// Passenger mirrors the users table. Tickets reference passengers by display
// name, not id; see DESIGN.md for the recorded hazard.
type Passenger struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BirthDate    string `json:"birth_date"`
	ResettleDate string `json:"resettle_date"`
	Address      string `json:"address"`
	CardPath     string `json:"-"`
}

// Employee is a staff account allowed to verify tickets and manage bookings.
type Employee struct {
	ID       int64  `json:"employee_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}
