package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel_booking/internal/cache"
	"travel_booking/internal/model"
	"travel_booking/internal/repository"
	"travel_booking/internal/service"
	"travel_booking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "router-test-secret"
	adminEmail = "admin@example.com"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine *gin.Engine
	store  *repository.Store
	jwt    *utils.JWTUtil
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := repository.NewMemoryStore()
	jwtUtil := utils.NewJWTUtil(testSecret, 1)
	engine := Setup(Deps{
		Store:             store,
		JWT:               jwtUtil,
		CatalogCache:      service.CatalogCache{Cache: cache.NewMemory(), TTL: time.Minute},
		Logger:            zerolog.Nop(),
		AllowedOrigins:    []string{"*"},
		AuthRatePerMinute: 6000,
		AuthRateBurst:     1000,
		InitialAdminEmail: adminEmail,
	})
	return &testApp{engine: engine, store: store, jwt: jwtUtil}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testApp) signupAndLogin(t *testing.T, username, email string) model.LoginResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/signup", "", gin.H{"username": username, "email": email, "password": "pa55word"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": "pa55word"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[model.LoginResponse](t, w)
}

var seaView = gin.H{
	"name":        "Sea View",
	"description": "Rooms by the beach",
	"image":       "http://x/sea.jpg",
	"state":       "Goa",
	"district":    "North Goa",
	"price":       1200.5,
	"contact":     "9999999999",
}

func TestSignupThenLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/signup", "", gin.H{"username": "asha", "email": "asha@example.com", "password": "pa55word"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"User created successfully"}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/login", "", gin.H{"email": "asha@example.com", "password": "pa55word"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[model.LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleCustomer, resp.Role)
	assert.Equal(t, "asha", resp.Username)

	claims, err := app.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/signup", "", gin.H{"username": "asha", "email": "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username, email, and password are required", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodPost, "/login", "", gin.H{"email": "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", decode[map[string]any](t, w)["message"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.signupAndLogin(t, "asha", "asha@example.com")

	w := app.do(t, http.MethodPost, "/signup", "", gin.H{"username": "other", "email": "asha@example.com", "password": "different"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "This email is already registered.", decode[map[string]any](t, w)["message"])

	user, err := app.store.Users.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "asha", user.Username, "the original account is untouched")
}

func TestSignupCannotSelfAssignAdmin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/signup", "", gin.H{"username": "mallory", "email": "mallory@example.com", "password": "pa55word", "role": "admin"})
	require.Equal(t, http.StatusCreated, w.Code)

	user, err := app.store.Users.FindByEmail(context.Background(), "mallory@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)

	admin := app.signupAndLogin(t, "root", adminEmail)
	assert.Equal(t, model.RoleAdmin, admin.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.signupAndLogin(t, "asha", "asha@example.com")
	before, err := app.store.Users.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)

	w := app.do(t, http.MethodPost, "/login", "", gin.H{"email": "asha@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode[map[string]any](t, w)["message"])

	after, err := app.store.Users.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	w = app.do(t, http.MethodPost, "/login", "", gin.H{"email": "ghost@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode[map[string]any](t, w)["message"])
}

func TestAdminRoutesAreGated(t *testing.T) {
	app := newTestApp(t)
	customer := app.signupAndLogin(t, "asha", "asha@example.com")

	w := app.do(t, http.MethodPost, "/addListing", "", seaView)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized: No token provided", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodPost, "/addListing", customer.Token, seaView)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Admins only access", decode[map[string]any](t, w)["message"])

	forged, err := utils.NewJWTUtil("some-other-secret", 1).GenerateToken(utils.Identity{UserID: customer.UserID, Role: model.RoleAdmin})
	require.NoError(t, err)
	w = app.do(t, http.MethodPost, "/addListing", forged, seaView)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Invalid token", decode[map[string]any](t, w)["message"])

	listings, err := app.store.Listings.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestListingRoundTrip(t *testing.T) {
	app := newTestApp(t)
	admin := app.signupAndLogin(t, "root", adminEmail)

	w := app.do(t, http.MethodGet, "/getListings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = app.do(t, http.MethodPost, "/addListing", admin.Token, seaView)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Message string        `json:"message"`
		Listing model.Listing `json:"listing"`
	}](t, w)
	assert.Equal(t, "Listing added successfully", created.Message)
	require.False(t, created.Listing.ID.IsZero())

	w = app.do(t, http.MethodGet, "/getListing/"+created.Listing.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[model.Listing](t, w)
	assert.Equal(t, created.Listing, got)
	assert.Equal(t, "Sea View", got.Name)
	assert.Equal(t, 1200.5, got.Price)

	w = app.do(t, http.MethodGet, "/getListings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Listing](t, w), 1)
}

func TestAddListingValidation(t *testing.T) {
	app := newTestApp(t)
	admin := app.signupAndLogin(t, "root", adminEmail)

	w := app.do(t, http.MethodPost, "/addListing", admin.Token, gin.H{"name": "Sea View"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodPost, "/addListing", admin.Token, with(seaView, gin.H{"price": "cheap"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "All fields are required", body["message"])
	assert.NotContains(t, body, "error", "decoder detail stays in the logs")
}

func with(base, overrides gin.H) gin.H {
	out := gin.H{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func TestFormStringNumbersAreAccepted(t *testing.T) {
	app := newTestApp(t)
	admin := app.signupAndLogin(t, "root", adminEmail)

	w := app.do(t, http.MethodPost, "/addListing", admin.Token, with(seaView, gin.H{"price": "1200"}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	listing := decode[struct {
		Listing model.Listing `json:"listing"`
	}](t, w).Listing
	assert.Equal(t, 1200.0, listing.Price)

	w = app.do(t, http.MethodPost, "/addPackage", admin.Token, gin.H{
		"name": "Goa Trip", "image": "http://x/img.jpg", "description": "desc",
		"days": "5", "placesCount": "2", "places": "Goa, Mumbai", "cost": "15000", "phone": "9999999999",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pkg := decode[struct {
		Package model.TourPackage `json:"package"`
	}](t, w).Package
	assert.Equal(t, 5, pkg.Days)
	assert.Equal(t, 2, pkg.PlacesCount)
	assert.Equal(t, 15000.0, pkg.Cost)

	w = app.do(t, http.MethodPost, "/addPackage", admin.Token, gin.H{
		"name": "Goa Trip", "image": "http://x/img.jpg", "description": "desc",
		"days": "0", "placesCount": "2", "places": "Goa, Mumbai", "cost": "15000", "phone": "9999999999",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/orders", admin.Token, gin.H{
		"type": "package", "amount": "15000", "packageId": pkg.ID.Hex(), "packageName": pkg.Name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 15000.0, decode[struct {
		Order map[string]any `json:"order"`
	}](t, w).Order["amount"])
}

func TestDeleteListing(t *testing.T) {
	app := newTestApp(t)
	admin := app.signupAndLogin(t, "root", adminEmail)

	w := app.do(t, http.MethodPost, "/addListing", admin.Token, seaView)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[struct {
		Listing model.Listing `json:"listing"`
	}](t, w).Listing.ID.Hex()

	// Prime the list cache so deletion has something to invalidate.
	require.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/getListings", "", nil).Code)

	w = app.do(t, http.MethodDelete, "/deleteListing/"+"0123456789abcdef01234567", admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Listing not found.", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodDelete, "/deleteListing/not-an-id", admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid listing ID format.", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodGet, "/getListings", "", nil)
	assert.Len(t, decode[[]model.Listing](t, w), 1, "failed deletes leave the collection alone")

	w = app.do(t, http.MethodDelete, "/deleteListing/"+id, admin.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Listing deleted successfully!", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodGet, "/getListings", "", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = app.do(t, http.MethodGet, "/getListing/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddPackageNormalizesPlaces(t *testing.T) {
	app := newTestApp(t)
	admin := app.signupAndLogin(t, "root", adminEmail)

	w := app.do(t, http.MethodPost, "/addPackage", admin.Token, gin.H{
		"name":        "Goa Trip",
		"image":       "http://x/img.jpg",
		"description": "desc",
		"days":        5,
		"placesCount": 2,
		"places":      "Goa, Mumbai",
		"cost":        15000,
		"phone":       "9999999999",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Message string            `json:"message"`
		Package model.TourPackage `json:"package"`
	}](t, w)
	assert.Equal(t, "Package added successfully!", created.Message)
	assert.Equal(t, []string{"Goa", "Mumbai"}, created.Package.Places)

	stored, err := app.store.Packages.FindByID(context.Background(), created.Package.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"Goa", "Mumbai"}, stored.Places)

	w = app.do(t, http.MethodGet, "/getPackage/"+created.Package.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Goa", "Mumbai"}, decode[model.TourPackage](t, w).Places)
}

func TestAddPackageValidation(t *testing.T) {
	app := newTestApp(t)
	admin := app.signupAndLogin(t, "root", adminEmail)

	w := app.do(t, http.MethodPost, "/addPackage", admin.Token, gin.H{"name": "Goa Trip", "days": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all required fields.", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodDelete, "/deletePackage/xyz", admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid package ID format.", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodGet, "/getPackage/0123456789abcdef01234567", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Package not found.", decode[map[string]any](t, w)["message"])
}

func TestOrdersAreScopedToCaller(t *testing.T) {
	app := newTestApp(t)
	alice := app.signupAndLogin(t, "alice", "alice@example.com")
	bob := app.signupAndLogin(t, "bob", "bob@example.com")

	w := app.do(t, http.MethodGet, "/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/orders", alice.Token, gin.H{
		"type":        "listing",
		"amount":      1200,
		"listingId":   "0123456789abcdef01234567",
		"listingName": "Sea View",
		"checkInDate": "2025-06-01",
		"packageId":   "89abcdef0123456789abcdef",
		"packageName": "Goa Trip",
		"userId":      bob.UserID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	placed := decode[struct {
		Message string         `json:"message"`
		Order   map[string]any `json:"order"`
	}](t, w)
	assert.Equal(t, "Order placed successfully!", placed.Message)
	assert.Equal(t, alice.UserID, placed.Order["userId"], "owner comes from the token")
	assert.Equal(t, "Pending", placed.Order["status"])
	assert.Equal(t, "Sea View", placed.Order["listingName"])
	assert.NotContains(t, placed.Order, "packageId")
	assert.NotContains(t, placed.Order, "packageName")

	w = app.do(t, http.MethodGet, "/orders", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]map[string]any](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, placed.Order["_id"], mine[0]["_id"])

	w = app.do(t, http.MethodGet, "/orders", bob.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateOrderValidation(t *testing.T) {
	app := newTestApp(t)
	alice := app.signupAndLogin(t, "alice", "alice@example.com")

	w := app.do(t, http.MethodPost, "/orders", alice.Token, gin.H{"type": "listing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Type and amount are required to create an order.", decode[map[string]any](t, w)["message"])

	w = app.do(t, http.MethodPost, "/orders", alice.Token, gin.H{"type": "package", "amount": 10, "packageName": "Goa Trip"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/orders", alice.Token, gin.H{"type": "package", "amount": 10, "packageId": "nope", "packageName": "Goa Trip"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderStatusTransitions(t *testing.T) {
	app := newTestApp(t)
	admin := app.signupAndLogin(t, "root", adminEmail)
	alice := app.signupAndLogin(t, "alice", "alice@example.com")

	w := app.do(t, http.MethodPost, "/orders", alice.Token, gin.H{
		"type": "package", "amount": 15000, "packageId": "89abcdef0123456789abcdef", "packageName": "Goa Trip",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decode[struct {
		Order map[string]any `json:"order"`
	}](t, w).Order["_id"].(string)
	path := "/orders/" + orderID + "/status"

	w = app.do(t, http.MethodPatch, path, alice.Token, gin.H{"status": "Completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPatch, path, admin.Token, gin.H{"status": "Shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPatch, "/orders/bad-id/status", admin.Token, gin.H{"status": "Completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPatch, "/orders/0123456789abcdef01234567/status", admin.Token, gin.H{"status": "Completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPatch, path, admin.Token, gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Completed", decode[map[string]any](t, w)["status"])

	w = app.do(t, http.MethodPatch, path, admin.Token, gin.H{"status": "Cancelled"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Invalid status transition", decode[map[string]any](t, w)["message"])
}

func TestAuthRateLimit(t *testing.T) {
	store := repository.NewMemoryStore()
	engine := Setup(Deps{
		Store:             store,
		JWT:               utils.NewJWTUtil(testSecret, 1),
		Logger:            zerolog.Nop(),
		AuthRatePerMinute: 1,
		AuthRateBurst:     2,
	})
	app := &testApp{engine: engine, store: store}

	body := gin.H{"email": "ghost@example.com", "password": "x"}
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPost, "/login", "", body).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPost, "/login", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(t, http.MethodPost, "/login", "", body).Code)

	// Catalog reads are not limited.
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/getListings", "", nil).Code)
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","db":"healthy"}`, w.Body.String())

	w = app.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "travel_http_requests_total")

	w = app.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
