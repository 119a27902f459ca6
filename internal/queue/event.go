// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedEvent is published when a reservation is successfully
// created.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the service.
type ReservationBookedEvent struct {
    ReservationID uint64  `json:"reservation_id"`
    RoomID        uint64  `json:"room_id"`
    RoomNumber    uint32  `json:"room_number"`
    GuestID       uint64  `json:"guest_id"`
    PartySize     uint32  `json:"party_size"`
    StartDate     string  `json:"start_date"`
    EndDate       string  `json:"end_date"`
    Days          int     `json:"days"`
    TotalPrice    float64 `json:"total_price"`
    AutoAssigned  bool    `json:"auto_assigned"`
    BookedAt      string  `json:"booked_at"`
}

// ReservationCancelledEvent is published when a reservation is
// soft-deleted.  The record itself survives in the ledger; the event
// lets consumers track freed capacity.
type ReservationCancelledEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    RoomID        uint64 `json:"room_id"`
    GuestID       uint64 `json:"guest_id"`
    CancelledAt   string `json:"cancelled_at"`
}
