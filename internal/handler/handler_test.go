package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

// stoppedClock pins the desk's notion of "today" so occupancy results
// do not depend on when the tests run.
type stoppedClock struct{ t time.Time }

func (c stoppedClock) Now() time.Time { return c.t }

// newTestDesk builds a desk frozen at 2030-06-15 with three rooms and
// two registered guests.
func newTestDesk(t *testing.T) *store.Desk {
	t.Helper()
	desk := store.NewDesk(stoppedClock{t: time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC)})
	desk.Load(
		[]model.Room{
			{ID: 1, Number: 101, Capacity: 2},
			{ID: 2, Number: 102, Capacity: 4},
			{ID: 3, Number: 103, Capacity: 4},
		},
		[]model.Guest{
			{ID: 1, Name: "Ana Ferreira", Document: "X123"},
			{ID: 2, Name: "Bruno Costa", Document: "Y456"},
		},
		nil,
	)
	return desk
}

// doRequest runs a single handler with an optional JSON body and path
// parameters given as name/value pairs.
func doRequest(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, h(c))
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeJSON(t, rec, &body)
	return body["error"]
}
