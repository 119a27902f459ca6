package handler

import (
    "context"  // background context for fire-and-forget event publishing
    "errors"   // errors.Is comparisons against store sentinels
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "time"     // event timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-reservation/internal/model" // domain records
    "github.com/iliyamo/hotel-reservation/internal/queue" // event payloads
    "github.com/iliyamo/hotel-reservation/internal/store" // in-memory reservation core
)

// ReservationHandler serves booking creation, edits, cancellation and
// the ledger listings.  Every mutation goes through the desk, which
// runs validation, the ledger write and the occupancy resync under one
// lock; the handler only translates results to HTTP.
//
// PublishBooked and PublishCancelled are optional hooks wired to the
// message broker in production and left nil in tests.  Publishing is
// fire-and-forget: a broker outage never fails a booking.
type ReservationHandler struct {
    Desk             *store.Desk
    PublishBooked    func(ctx context.Context, ev queue.ReservationBookedEvent) error
    PublishCancelled func(ctx context.Context, ev queue.ReservationCancelledEvent) error
}

// NewReservationHandler constructs a ReservationHandler.  The desk must
// be non-nil; the publish hooks may be nil.
func NewReservationHandler(desk *store.Desk) *ReservationHandler {
    if desk == nil {
        panic("nil desk passed to NewReservationHandler")
    }
    return &ReservationHandler{Desk: desk}
}

// reservationResponse decorates a reservation with its room assignment,
// length of stay in occupied days and total price (days × the room's
// daily rate; the inclusive end date is a paid day).
type reservationResponse struct {
    model.Reservation
    RoomNumber   uint32  `json:"room_number"`
    Days         int     `json:"days"`
    TotalPrice   float64 `json:"total_price"`
    AutoAssigned bool    `json:"auto_assigned,omitempty"`
}

func (h *ReservationHandler) toResponse(r model.Reservation, auto bool) reservationResponse {
    out := reservationResponse{Reservation: r, AutoAssigned: auto}
    if room, err := h.Desk.RoomByID(r.RoomID); err == nil {
        out.RoomNumber = room.Number
        out.Days = store.Days(r.StartDate, r.EndDate)
        out.TotalPrice = float64(out.Days) * room.DailyRate()
    }
    return out
}

// ListReservations handles GET /v1/reservations: the full ledger in
// insertion order, cancelled records included.
func (h *ReservationHandler) ListReservations(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Desk.Reservations())
}

// GetReservation handles GET /v1/reservations/:id.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    res, err := h.Desk.ReservationByID(id)
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    }
    return c.JSON(http.StatusOK, h.toResponse(res, false))
}

// CreateReservation handles POST /v1/reservations.  When room_id is
// present the named room is booked; when it is absent the desk picks
// the best-fit room for the party and dates (smallest leftover
// capacity among conflict-free candidates) and books it in the same
// critical section.  An exhausted search answers 422 — no room fits —
// which is a negative result, not a server fault.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
    var body struct {
        RoomID    uint64 `json:"room_id"`
        GuestID   uint64 `json:"guest_id"`
        PartySize uint32 `json:"party_size"`
        StartDate string `json:"start_date"`
        EndDate   string `json:"end_date"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.GuestID == 0 || body.PartySize == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_id and party_size are required"})
    }

    var (
        res  model.Reservation
        err  error
        auto bool
    )
    if body.RoomID != 0 {
        res, err = h.Desk.Reserve(body.RoomID, body.GuestID, body.PartySize, body.StartDate, body.EndDate)
    } else {
        auto = true
        res, _, err = h.Desk.ReserveAuto(body.GuestID, body.PartySize, body.StartDate, body.EndDate)
    }
    if err != nil {
        return reservationError(c, err)
    }

    out := h.toResponse(res, auto)
    if h.PublishBooked != nil {
        ev := queue.ReservationBookedEvent{
            ReservationID: res.ID,
            RoomID:        res.RoomID,
            RoomNumber:    out.RoomNumber,
            GuestID:       res.GuestID,
            PartySize:     res.PartySize,
            StartDate:     res.StartDate,
            EndDate:       res.EndDate,
            Days:          out.Days,
            TotalPrice:    out.TotalPrice,
            AutoAssigned:  auto,
            BookedAt:      time.Now().UTC().Format(time.RFC3339),
        }
        go func() { _ = h.PublishBooked(context.Background(), ev) }()
    }
    return c.JSON(http.StatusCreated, out)
}

// UpdateReservation handles PUT /v1/reservations/:id: new party size
// and dates for an active reservation.  The desk excludes the
// reservation from its own conflict check, so resubmitting unchanged
// dates succeeds.
func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var body struct {
        PartySize uint32 `json:"party_size"`
        StartDate string `json:"start_date"`
        EndDate   string `json:"end_date"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    res, err := h.Desk.EditReservation(id, body.PartySize, body.StartDate, body.EndDate)
    if err != nil {
        return reservationError(c, err)
    }
    return c.JSON(http.StatusOK, h.toResponse(res, false))
}

// CancelReservation handles DELETE /v1/reservations/:id.  Cancellation
// is a soft delete: the record stays in the ledger for history and the
// room's dates open up again immediately.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    res, err := h.Desk.CancelReservation(id)
    if err != nil {
        return reservationError(c, err)
    }
    if h.PublishCancelled != nil {
        ev := queue.ReservationCancelledEvent{
            ReservationID: res.ID,
            RoomID:        res.RoomID,
            GuestID:       res.GuestID,
            CancelledAt:   time.Now().UTC().Format(time.RFC3339),
        }
        go func() { _ = h.PublishCancelled(context.Background(), ev) }()
    }
    return c.JSON(http.StatusOK, h.toResponse(res, false))
}

// reservationError maps the store sentinels onto HTTP statuses: missing
// records are 404, validation failures 400, booking conflicts 409 and
// an empty allocation search 422.
func reservationError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, store.ErrRoomNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
    case errors.Is(err, store.ErrGuestNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
    case errors.Is(err, store.ErrReservationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, store.ErrInvalidDate):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be valid YYYY-MM-DD and start must not come after end"})
    case errors.Is(err, store.ErrCapacityExceeded):
        return c.JSON(http.StatusConflict, echo.Map{"error": "party size exceeds room capacity"})
    case errors.Is(err, store.ErrDateOverlap):
        return c.JSON(http.StatusConflict, echo.Map{"error": "dates overlap an existing reservation"})
    case errors.Is(err, store.ErrNoRoomAvailable):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no suitable room available for these dates"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}
