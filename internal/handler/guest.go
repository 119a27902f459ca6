package handler

import (
    "errors"   // errors.Is comparisons against store sentinels
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "strings"  // trimming request fields

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-reservation/internal/store" // in-memory reservation core
)

// GuestHandler serves guest registration, edits and lookups.  The
// desk enforces the document natural key: two guests can never share
// an identity document, and an edit that would collide is rejected
// without touching the record.
type GuestHandler struct {
    Desk *store.Desk
}

// NewGuestHandler constructs a GuestHandler.  The desk must be non-nil.
func NewGuestHandler(desk *store.Desk) *GuestHandler {
    if desk == nil {
        panic("nil desk passed to NewGuestHandler")
    }
    return &GuestHandler{Desk: desk}
}

// ListGuests handles GET /v1/guests.
func (h *GuestHandler) ListGuests(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Desk.Guests())
}

// GetGuest handles GET /v1/guests/:id.
func (h *GuestHandler) GetGuest(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
    }
    guest, err := h.Desk.GuestByID(id)
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
    }
    return c.JSON(http.StatusOK, guest)
}

// GetGuestByDocument handles GET /v1/guests/document/:document, the
// natural-key lookup.  Documents are matched exactly, case-sensitive.
func (h *GuestHandler) GetGuestByDocument(c echo.Context) error {
    document := c.Param("document")
    if document == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "document is required"})
    }
    guest, err := h.Desk.GuestByDocument(document)
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
    }
    return c.JSON(http.StatusOK, guest)
}

// CreateGuest handles POST /v1/guests.  The body must carry a name and
// a document; a document already registered to another guest answers
// 409 Conflict.
func (h *GuestHandler) CreateGuest(c echo.Context) error {
    var body struct {
        Name     string `json:"name"`
        Document string `json:"document"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    document := strings.TrimSpace(body.Document)
    if name == "" || document == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and document are required"})
    }
    guest, err := h.Desk.CreateGuest(name, document)
    if err != nil {
        if errors.Is(err, store.ErrDuplicateDocument) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "document already registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create guest"})
    }
    return c.JSON(http.StatusCreated, guest)
}

// UpdateGuest handles PUT /v1/guests/:id.  Both fields are replaced;
// moving the document onto one held by another guest answers 409 and
// leaves the record unchanged.
func (h *GuestHandler) UpdateGuest(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
    }
    var body struct {
        Name     string `json:"name"`
        Document string `json:"document"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    document := strings.TrimSpace(body.Document)
    if name == "" || document == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and document are required"})
    }
    guest, err := h.Desk.UpdateGuest(id, name, document)
    if err != nil {
        switch {
        case errors.Is(err, store.ErrGuestNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
        case errors.Is(err, store.ErrDuplicateDocument):
            return c.JSON(http.StatusConflict, echo.Map{"error": "document already registered"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update guest"})
        }
    }
    return c.JSON(http.StatusOK, guest)
}

// ListGuestReservations handles GET /v1/guests/:id/reservations and
// returns the guest's full booking history, cancelled stays included.
func (h *GuestHandler) ListGuestReservations(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
    }
    reservations, err := h.Desk.ReservationsByGuest(id)
    if err != nil {
        if errors.Is(err, store.ErrGuestNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list reservations"})
    }
    return c.JSON(http.StatusOK, reservations)
}
