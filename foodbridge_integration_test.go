package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/router"
	"github.com/foodbridge/donation-app/store"
	"github.com/foodbridge/donation-app/utils"
)

var (
	testRouter *gin.Engine
	testStore  *store.Store
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}

	testStore = store.New(store.NewNotificationCenter(0))
	testRouter = router.SetupRouter(db, testStore)

	os.Exit(m.Run())
}

func request(t *testing.T, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "no data object in response: %s", w.Body.String())
	return data
}

func mintToken(t *testing.T, userID uint, role, name string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, role, name, name)
	require.NoError(t, err)
	return token
}

func TestEndToEnd(t *testing.T) {
	// Register/login sit behind a small burst limit, so only the donor
	// goes through the HTTP flow; the other roles get minted tokens.
	w := request(t, "POST", "/register", "", map[string]interface{}{
		"name":             "The Grand Hotel",
		"email":            "kitchen@grandhotel.example",
		"password":         "secret123",
		"password_confirm": "secret123",
		"role":             "donor",
		"organization":     "The Grand Hotel",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(t, "POST", "/login", "", map[string]interface{}{
		"email":    "kitchen@grandhotel.example",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	donorToken := dataOf(t, w)["token"].(string)

	ngoToken := mintToken(t, 2, "ngo", "Community Food Bank")
	courierToken := mintToken(t, 3, "courier", "Ahmed Hassan")
	adminToken := mintToken(t, 4, "admin", "Ops")

	// No token, no entry.
	w = request(t, "GET", "/donations/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Donor lists surplus food.
	w = request(t, "POST", "/donations", donorToken, map[string]interface{}{
		"food_type":       "Biryani",
		"quantity":        "50 servings",
		"expiry_hours":    2,
		"pickup_location": "123 Main St, Downtown",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	donationID := dataOf(t, w)["id"].(string)

	// Role gates: a donor cannot accept, an NGO cannot pick up.
	w = request(t, "POST", "/donations/"+donationID+"/accept", donorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = request(t, "POST", "/donations/"+donationID+"/pickup", ngoToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// NGO finds it and claims it.
	w = request(t, "GET", "/donations/available", ngoToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, "POST", "/donations/"+donationID+"/accept", ngoToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Community Food Bank", dataOf(t, w)["ngo_name"])

	// Courier sees it on the board and collects it.
	w = request(t, "GET", "/donations/board", courierToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := dataOf(t, w)
	assert.Len(t, board["ready_for_pickup"], 1)

	w = request(t, "POST", "/donations/"+donationID+"/pickup", courierToken, map[string]interface{}{
		"lat": 40.7128,
		"lng": -74.0060,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = request(t, "POST", "/donations/"+donationID+"/location", courierToken, map[string]interface{}{
		"lat": 40.7200,
		"lng": -74.0000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// NGO confirms receipt.
	w = request(t, "POST", "/donations/"+donationID+"/deliver", ngoToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "delivered", dataOf(t, w)["status"])

	// Donor was notified at every step.
	w = request(t, "GET", "/notifications", donorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifResp))
	notifs := notifResp["data"].([]interface{})
	require.Len(t, notifs, 4)
	assert.Equal(t, "Delivery Complete!", notifs[0].(map[string]interface{})["title"])

	// Admin-only surfaces.
	w = request(t, "GET", "/analytics", donorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(t, "GET", "/analytics", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	analytics := dataOf(t, w)
	assert.Equal(t, float64(1), analytics["total_donations"])
	assert.Equal(t, float64(50), analytics["total_meals_saved"])
	assert.Equal(t, float64(100), analytics["success_rate"])

	w = request(t, "GET", "/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	statusStats := dataOf(t, w)["status_stats"].(map[string]interface{})
	assert.Equal(t, float64(1), statusStats["delivered"])

	// Leaderboard is open to any authenticated role.
	w = request(t, "GET", "/leaderboard", courierToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lbResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lbResp))
	entries := lbResp["data"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, "The Grand Hotel", entries[0].(map[string]interface{})["restaurant_name"])
}

func TestLogoutRevokesToken(t *testing.T) {
	token := mintToken(t, 7, "donor", "City Restaurant")

	w := request(t, "GET", "/donations/mine", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, "POST", "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, "GET", "/donations/mine", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
