package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-reservation/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers infrastructure routes on the provided Echo
// instance.  At the moment it only exposes a health check endpoint.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterRooms registers room browse endpoints under /v1.  Rooms are
// managed through the seeded database, so only read operations are
// exposed; listing supports ?status=free|occupied filtering.  The
// optional cache middleware applies to every room route — they are all
// reads.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, cache ...echo.MiddlewareFunc) {
	g := e.Group("/v1/rooms")
	g.GET("", h.ListRooms, cache...)
	g.GET("/:id", h.GetRoom, cache...)
	// Look up a room by its door number rather than its internal id.
	e.GET("/v1/rooms/number/:number", h.GetRoomByNumber, cache...)
	// The reservation whose stay covers today, if any.
	g.GET("/:id/current", h.GetCurrentReservation, cache...)
	// Full reservation history for a room; ?active=true hides cancelled stays.
	g.GET("/:id/reservations", h.ListRoomReservations, cache...)
}

// RegisterGuests registers guest CRUD endpoints under /v1.  Guests are
// identified by id, but the registry also supports lookup by identity
// document since that is the natural key used at check-in.  The cache
// middleware is mounted on the GET routes only — mutations must reach
// the desk every time.
func RegisterGuests(e *echo.Echo, h *handler.GuestHandler, cache ...echo.MiddlewareFunc) {
	g := e.Group("/v1/guests")
	g.GET("", h.ListGuests, cache...)
	g.POST("", h.CreateGuest)
	g.GET("/:id", h.GetGuest, cache...)
	g.PUT("/:id", h.UpdateGuest)
	g.GET("/:id/reservations", h.ListGuestReservations, cache...)
	e.GET("/v1/guests/document/:document", h.GetGuestByDocument, cache...)
}

// RegisterReservations registers the reservation booking endpoints
// under /v1.  POST creates a booking either for an explicit room or,
// when room_id is omitted, lets the allocator pick the best-fitting
// free room.  DELETE is a soft cancellation: the record stays in the
// ledger marked inactive.  Only the two read routes take the cache.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, cache ...echo.MiddlewareFunc) {
	g := e.Group("/v1/reservations")
	g.GET("", h.ListReservations, cache...)
	g.POST("", h.CreateReservation)
	g.GET("/:id", h.GetReservation, cache...)
	g.PUT("/:id", h.UpdateReservation)
	g.DELETE("/:id", h.CancelReservation)
}
