package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/sporthub/config"
	"github.com/Domenick1991/sporthub/internal/catalog"
	"github.com/Domenick1991/sporthub/internal/kv"
	"github.com/Domenick1991/sporthub/internal/repository"
	"github.com/Domenick1991/sporthub/internal/service/availability"
	"github.com/Domenick1991/sporthub/internal/service/booking"
	catalogsvc "github.com/Domenick1991/sporthub/internal/service/catalog"
	"github.com/Domenick1991/sporthub/internal/service/review"
	"github.com/Domenick1991/sporthub/internal/service/stats"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemoryStore()
	data, err := catalog.Default()
	require.NoError(t, err)
	pricing, err := catalogsvc.NewPricing(config.PricingConfig{TaxRate: "0.08", PromoDiscount: "0.10", PromoCodes: []string{"SAVE10"}})
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	bookings := repository.NewBookingRepository(store)
	catalogService := catalogsvc.NewCatalogService(data, pricing)

	return NewRouter(RouterConfig{
		BasePath:       "/api/v1",
		JWTSecret:      testSecret,
		RequestTimeout: 5 * time.Second,
	}, Services{
		Bookings:     booking.NewBookingService(bookings, booking.WithLogger(log)),
		Reviews:      review.NewReviewService(repository.NewReviewRepository(store), review.WithLogger(log)),
		Availability: availability.NewAvailabilityService(bookings, catalogService),
		Stats:        stats.NewStatsService(bookings),
		Catalog:      catalogService,
	}, log)
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, router http.Handler, method, path, body, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

const bookingBody = `{"sport":"badminton","venueId":"v1","venueName":"Elite Sports Arena","date":"2025-12-01","timeSlot":"6:00 PM","price":24.3,"promoCode":"SAVE10"}`

func TestRouter_BookingLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, testSecret, "u1")

	code, resp := do(t, router, http.MethodPost, "/api/v1/bookings", bookingBody, token)
	require.Equal(t, http.StatusOK, code, resp)
	created := resp["booking"].(map[string]interface{})
	id := created["id"].(string)
	assert.Equal(t, "u1", created["userId"])
	assert.Equal(t, "confirmed", created["status"])

	code, resp = do(t, router, http.MethodGet, "/api/v1/venues/v1/availability?date=2025-12-01", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{"6:00 PM"}, resp["bookedSlots"])

	code, resp = do(t, router, http.MethodPost, "/api/v1/bookings", bookingBody, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Time slot already booked", resp["error"])

	code, resp = do(t, router, http.MethodGet, "/api/v1/users/u1/bookings", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["bookings"], 1)

	code, _ = do(t, router, http.MethodDelete, "/api/v1/bookings/"+id, "", "")
	assert.Equal(t, http.StatusOK, code)

	code, resp = do(t, router, http.MethodGet, "/api/v1/venues/v1/availability?date=2025-12-01", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp["bookedSlots"])

	code, resp = do(t, router, http.MethodGet, "/api/v1/bookings/"+id, "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cancelled", resp["booking"].(map[string]interface{})["status"])

	code, resp = do(t, router, http.MethodGet, "/api/v1/stats", "", "")
	assert.Equal(t, http.StatusOK, code)
	s := resp["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), s["totalBookings"])
	assert.Equal(t, float64(1), s["cancelledBookings"])
}

func TestRouter_GuestBooking(t *testing.T) {
	router := newTestRouter(t)

	code, resp := do(t, router, http.MethodPost, "/api/v1/bookings", bookingBody, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "guest", resp["booking"].(map[string]interface{})["userId"])
}

func TestRouter_InvalidToken(t *testing.T) {
	router := newTestRouter(t)

	code, resp := do(t, router, http.MethodPost, "/api/v1/bookings", bookingBody, signToken(t, "other-secret", "u1"))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", resp["error"])

	code, _ = do(t, router, http.MethodGet, "/api/v1/sports", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_Validation(t *testing.T) {
	router := newTestRouter(t)

	code, resp := do(t, router, http.MethodPost, "/api/v1/bookings", `{"venueId":"v1"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp["error"], "Missing required fields")

	code, resp = do(t, router, http.MethodGet, "/api/v1/venues/v1/availability", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Date parameter is required", resp["error"])

	code, _ = do(t, router, http.MethodPost, "/api/v1/reviews", `{"venueId":"v1","rating":6,"comment":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/api/v1/bookings/booking_missing", "", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_Reviews(t *testing.T) {
	router := newTestRouter(t)

	code, resp := do(t, router, http.MethodPost, "/api/v1/reviews", `{"venueId":"v2","rating":5,"comment":"Great pitch"}`, "")
	require.Equal(t, http.StatusOK, code)
	r := resp["review"].(map[string]interface{})
	assert.Equal(t, "guest", r["userId"])
	assert.Equal(t, "Anonymous", r["userName"])

	code, resp = do(t, router, http.MethodGet, "/api/v1/venues/v2/reviews", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["reviews"], 1)
}

func TestRouter_CatalogAndPricing(t *testing.T) {
	router := newTestRouter(t)

	code, resp := do(t, router, http.MethodGet, "/api/v1/sports", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["sports"], 8)

	code, resp = do(t, router, http.MethodGet, "/api/v1/venues/v1/quote?timeSlot=6:00%20PM&promoCode=save10", "", "")
	require.Equal(t, http.StatusOK, code)
	q := resp["quote"].(map[string]interface{})
	assert.Equal(t, 24.3, q["total"])
	assert.Equal(t, 1.8, q["tax"])

	code, resp = do(t, router, http.MethodPost, "/api/v1/promo/validate", `{"promoCode":"save10"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "SAVE10", resp["promoCode"])

	code, _ = do(t, router, http.MethodPost, "/api/v1/promo/validate", `{"promoCode":"nope"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/api/v1/venues/v404", "", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_HealthAndNotFound(t *testing.T) {
	router := newTestRouter(t)

	code, resp := do(t, router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, serviceName, resp["service"])

	code, _ = do(t, router, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, code)

	code, resp = do(t, router, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not found", resp["error"])
}
