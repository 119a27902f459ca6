package handler

import (
    "errors"   // errors.Is comparisons against store sentinels
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-reservation/internal/model" // domain records
    "github.com/iliyamo/hotel-reservation/internal/store" // in-memory reservation core
)

// RoomHandler serves the room queries: listings filtered by occupancy,
// lookups by ID or door number, the current occupant of a room and a
// room's reservation history.  Rooms are reference data, so there are
// no mutating endpoints here — occupancy only moves when the desk
// resyncs it after a booking mutation.
type RoomHandler struct {
    Desk *store.Desk
}

// NewRoomHandler constructs a RoomHandler.  The desk must be non-nil.
func NewRoomHandler(desk *store.Desk) *RoomHandler {
    if desk == nil {
        panic("nil desk passed to NewRoomHandler")
    }
    return &RoomHandler{Desk: desk}
}

// roomResponse decorates a room with its nightly rate for display.
type roomResponse struct {
    ID        uint64  `json:"id"`
    Number    uint32  `json:"number"`
    Capacity  uint32  `json:"capacity"`
    Occupied  bool    `json:"occupied"`
    DailyRate float64 `json:"daily_rate"`
}

func toRoomResponse(r model.Room) roomResponse {
    return roomResponse{
        ID:        r.ID,
        Number:    r.Number,
        Capacity:  r.Capacity,
        Occupied:  r.Occupied,
        DailyRate: r.DailyRate(),
    }
}

// ListRooms handles GET /v1/rooms.  The optional ?status=free|occupied
// query narrows the listing by the derived occupancy flag.
func (h *RoomHandler) ListRooms(c echo.Context) error {
    var rooms []model.Room
    switch c.QueryParam("status") {
    case "":
        rooms = h.Desk.Rooms()
    case "free":
        rooms = h.Desk.FreeRooms()
    case "occupied":
        rooms = h.Desk.OccupiedRooms()
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be free or occupied"})
    }
    out := make([]roomResponse, 0, len(rooms))
    for _, r := range rooms {
        out = append(out, toRoomResponse(r))
    }
    return c.JSON(http.StatusOK, out)
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    room, err := h.Desk.RoomByID(id)
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
    }
    return c.JSON(http.StatusOK, toRoomResponse(room))
}

// GetRoomByNumber handles GET /v1/rooms/number/:number, the user-facing
// lookup by door number.
func (h *RoomHandler) GetRoomByNumber(c echo.Context) error {
    number, err := strconv.ParseUint(c.Param("number"), 10, 32)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room number"})
    }
    room, err := h.Desk.RoomByNumber(uint32(number))
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
    }
    return c.JSON(http.StatusOK, toRoomResponse(room))
}

// GetCurrentReservation handles GET /v1/rooms/:id/current and reports
// who is in the room right now: the active reservation whose dates
// contain today.  An empty room answers 404 with a distinct message so
// clients can tell "no guest" from "no such room".
func (h *RoomHandler) GetCurrentReservation(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    res, ok, err := h.Desk.CurrentReservation(id)
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
    }
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room has no guest today"})
    }
    return c.JSON(http.StatusOK, res)
}

// ListRoomReservations handles GET /v1/rooms/:id/reservations.  By
// default the full history is returned, cancelled stays included;
// ?active=true narrows to active reservations.
func (h *RoomHandler) ListRoomReservations(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    activeOnly := c.QueryParam("active") == "true"
    reservations, err := h.Desk.ReservationsByRoom(id, activeOnly)
    if err != nil {
        if errors.Is(err, store.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list reservations"})
    }
    return c.JSON(http.StatusOK, reservations)
}
