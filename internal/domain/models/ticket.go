package models

// Ticket is one booking row: a passenger holding a seat in a class partition
// at a quantized time slot on a specific route. Cancellation flips Paid to 0;
// rows are never physically deleted.
type Ticket struct {
	ID               int64  `json:"ticketId"`
	PassengerName    string `json:"name"`
	ScheduledAt      string `json:"date_ticket_time"`
	CreatedAt        string `json:"date_ticket_find"`
	SeatNumber       string `json:"seat_number"`
	ClassRank        int    `json:"vip"`
	Paid             int    `json:"paid"`
	Line             string `json:"line"`
	DepartureStation string `json:"departure_station"`
	ArrivalStation   string `json:"arrival_station"`
}

// SeatStatus is the per-seat availability entry returned for a time slot.
// VIP collapses the class rank to 0/1 where the boundary expects a boolean.
type SeatStatus struct {
	SeatNumber string `json:"seat_number"`
	VIP        int    `json:"vip"`
}
