package handler

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/queue"
)

func TestCreateReservationForRequestedRoom(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)

	rec := doRequest(t, h.CreateReservation, http.MethodPost, "/v1/reservations",
		`{"room_id":2,"guest_id":1,"party_size":3,"start_date":"2030-07-01","end_date":"2030-07-04"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got reservationResponse
	decodeJSON(t, rec, &got)
	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, uint64(2), got.RoomID)
	assert.Equal(t, uint32(102), got.RoomNumber)
	assert.True(t, got.Active)
	assert.False(t, got.AutoAssigned)
	// Four occupied days (both endpoints count) at capacity 4 × 50.
	assert.Equal(t, 4, got.Days)
	assert.Equal(t, 800.0, got.TotalPrice)
}

func TestCreateReservationAutoAssignsBestFit(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)

	rec := doRequest(t, h.CreateReservation, http.MethodPost, "/v1/reservations",
		`{"guest_id":1,"party_size":2,"start_date":"2030-07-01","end_date":"2030-07-04"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got reservationResponse
	decodeJSON(t, rec, &got)
	// The capacity-2 room is the tightest fit for a party of two.
	assert.Equal(t, uint64(1), got.RoomID)
	assert.True(t, got.AutoAssigned)
}

func TestCreateReservationValidation(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"missing guest", `{"room_id":1,"party_size":2,"start_date":"2030-07-01","end_date":"2030-07-02"}`, http.StatusBadRequest},
		{"missing party size", `{"room_id":1,"guest_id":1,"start_date":"2030-07-01","end_date":"2030-07-02"}`, http.StatusBadRequest},
		{"malformed date", `{"room_id":1,"guest_id":1,"party_size":2,"start_date":"01/07/2030","end_date":"2030-07-02"}`, http.StatusBadRequest},
		{"reversed range", `{"room_id":1,"guest_id":1,"party_size":2,"start_date":"2030-07-05","end_date":"2030-07-02"}`, http.StatusBadRequest},
		{"party over capacity", `{"room_id":1,"guest_id":1,"party_size":3,"start_date":"2030-07-01","end_date":"2030-07-02"}`, http.StatusConflict},
		{"unknown room", `{"room_id":99,"guest_id":1,"party_size":2,"start_date":"2030-07-01","end_date":"2030-07-02"}`, http.StatusNotFound},
		{"unknown guest", `{"room_id":1,"guest_id":99,"party_size":2,"start_date":"2030-07-01","end_date":"2030-07-02"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, h.CreateReservation, http.MethodPost, "/v1/reservations", tc.body)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)

	rec := doRequest(t, h.CreateReservation, http.MethodPost, "/v1/reservations",
		`{"room_id":1,"guest_id":1,"party_size":2,"start_date":"2030-07-01","end_date":"2030-07-05"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Sharing only the checkout date still counts as a conflict.
	rec = doRequest(t, h.CreateReservation, http.MethodPost, "/v1/reservations",
		`{"room_id":1,"guest_id":2,"party_size":2,"start_date":"2030-07-05","end_date":"2030-07-08"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "dates overlap an existing reservation", errorMessage(t, rec))
}

func TestCreateReservationNoRoomAvailable(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)

	// A party of five exceeds every room.
	rec := doRequest(t, h.CreateReservation, http.MethodPost, "/v1/reservations",
		`{"guest_id":1,"party_size":5,"start_date":"2030-07-01","end_date":"2030-07-02"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateReservationPublishesBookedEvent(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)

	var (
		mu   sync.Mutex
		done = make(chan struct{})
		got  queue.ReservationBookedEvent
	)
	h.PublishBooked = func(_ context.Context, ev queue.ReservationBookedEvent) error {
		mu.Lock()
		got = ev
		mu.Unlock()
		close(done)
		return nil
	}

	rec := doRequest(t, h.CreateReservation, http.MethodPost, "/v1/reservations",
		`{"room_id":1,"guest_id":1,"party_size":2,"start_date":"2030-07-01","end_date":"2030-07-03"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	<-done
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, uint64(1), got.ReservationID)
	assert.Equal(t, uint32(101), got.RoomNumber)
	assert.Equal(t, 3, got.Days)
	assert.NotEmpty(t, got.BookedAt)
}

func TestGetReservation(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)
	_, err := desk.Reserve(1, 1, 2, "2030-07-01", "2030-07-03")
	require.NoError(t, err)

	rec := doRequest(t, h.GetReservation, http.MethodGet, "/v1/reservations/1", "", "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	var got reservationResponse
	decodeJSON(t, rec, &got)
	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, uint32(101), got.RoomNumber)

	rec = doRequest(t, h.GetReservation, http.MethodGet, "/v1/reservations/99", "", "id", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h.GetReservation, http.MethodGet, "/v1/reservations/abc", "", "id", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateReservation(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)
	_, err := desk.Reserve(2, 1, 3, "2030-07-01", "2030-07-04")
	require.NoError(t, err)

	// Resubmitting the same window must not conflict with itself.
	rec := doRequest(t, h.UpdateReservation, http.MethodPut, "/v1/reservations/1",
		`{"party_size":4,"start_date":"2030-07-01","end_date":"2030-07-04"}`, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	var got reservationResponse
	decodeJSON(t, rec, &got)
	assert.Equal(t, uint32(4), got.PartySize)

	rec = doRequest(t, h.UpdateReservation, http.MethodPut, "/v1/reservations/1",
		`{"party_size":5,"start_date":"2030-07-01","end_date":"2030-07-04"}`, "id", "1")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelReservation(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)
	_, err := desk.Reserve(1, 1, 2, "2030-07-01", "2030-07-03")
	require.NoError(t, err)

	rec := doRequest(t, h.CancelReservation, http.MethodDelete, "/v1/reservations/1", "", "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	var got reservationResponse
	decodeJSON(t, rec, &got)
	assert.False(t, got.Active)

	// The record is soft-deleted, not gone.
	rec = doRequest(t, h.GetReservation, http.MethodGet, "/v1/reservations/1", "", "id", "1")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Cancelling again is a no-op, not an error.
	rec = doRequest(t, h.CancelReservation, http.MethodDelete, "/v1/reservations/1", "", "id", "1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h.CancelReservation, http.MethodDelete, "/v1/reservations/99", "", "id", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReservationsIncludesCancelled(t *testing.T) {
	desk := newTestDesk(t)
	h := NewReservationHandler(desk)
	_, err := desk.Reserve(1, 1, 2, "2030-07-01", "2030-07-03")
	require.NoError(t, err)
	_, err = desk.Reserve(2, 2, 3, "2030-07-01", "2030-07-03")
	require.NoError(t, err)
	_, err = desk.CancelReservation(1)
	require.NoError(t, err)

	rec := doRequest(t, h.ListReservations, http.MethodGet, "/v1/reservations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	decodeJSON(t, rec, &got)
	assert.Len(t, got, 2)
}
