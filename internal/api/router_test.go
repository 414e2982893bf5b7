package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/daily-diet-be/internal/api"
	"github.com/isdelr/daily-diet-be/internal/models"
	"github.com/isdelr/daily-diet-be/internal/services"
	"github.com/isdelr/daily-diet-be/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, name string) http.Handler {
	t.Helper()
	db := testutil.OpenTestDB(t, name)
	return api.NewRouter(services.NewUserService(db), services.NewMealService(db))
}

func do(t *testing.T, h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sessionId" {
			return c
		}
	}
	t.Fatal("expected a sessionId cookie on the response")
	return nil
}

func createUser(t *testing.T, h http.Handler, name, email, password string) models.User {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/users", `{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Empty(t, rec.Body.String(), "create responds with status alone")

	var listed struct {
		Users []models.User `json:"users"`
	}
	rec = do(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &listed)
	for _, u := range listed.Users {
		if u.Email == email && u.Name == name {
			return u
		}
	}
	t.Fatalf("created user %q not present in list", email)
	return models.User{}
}

func TestHello(t *testing.T) {
	h := newTestRouter(t, "router_hello")
	rec := do(t, h, http.MethodGet, "/hello", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello world!", rec.Body.String())
}

func TestEndToEndScenario(t *testing.T) {
	h := newTestRouter(t, "router_e2e")

	ana := createUser(t, h, "Ana", "ana@x.com", "secret1")
	_, err := uuid.Parse(ana.ID)
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/meals",
		`{"name":"Lunch","description":"rice","on_diet":true,"user_id":"`+ana.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)

	rec = do(t, h, http.MethodGet, "/meals", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Meals []models.Meal `json:"meals"`
	}
	decodeInto(t, rec, &listed)
	require.Len(t, listed.Meals, 1)
	meal := listed.Meals[0]
	assert.Equal(t, "Lunch", meal.Name)
	assert.Equal(t, "rice", meal.Description)
	assert.True(t, meal.OnDiet)
	assert.Equal(t, ana.ID, meal.UserID)
	assert.Equal(t, cookie.Value, meal.SessionID)

	rec = do(t, h, http.MethodGet, "/meals/"+meal.ID, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var single struct {
		Meal models.Meal `json:"meal"`
	}
	decodeInto(t, rec, &single)
	assert.Equal(t, meal.ID, single.Meal.ID)
}

func TestMealSessionIsolation(t *testing.T) {
	h := newTestRouter(t, "router_isolation")
	ana := createUser(t, h, "Ana", "ana@x.com", "secret1")

	rec := do(t, h, http.MethodPost, "/meals",
		`{"name":"Lunch","description":"rice","on_diet":true,"user_id":"`+ana.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookieA := sessionCookie(t, rec)

	rec = do(t, h, http.MethodPost, "/meals",
		`{"name":"Dinner","description":"pizza","on_diet":false,"user_id":"`+ana.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookieB := sessionCookie(t, rec)
	require.NotEqual(t, cookieA.Value, cookieB.Value)

	var listed struct {
		Meals []models.Meal `json:"meals"`
	}
	rec = do(t, h, http.MethodGet, "/meals", "", cookieA)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &listed)
	require.Len(t, listed.Meals, 1)
	assert.Equal(t, "Lunch", listed.Meals[0].Name)
	lunchID := listed.Meals[0].ID

	// Reading another session's meal by id is a 404, not a 403.
	rec = do(t, h, http.MethodGet, "/meals/"+lunchID, "", cookieB)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Meal does not exist."}`, rec.Body.String())
}

func TestMealsRequireSessionCookie(t *testing.T) {
	h := newTestRouter(t, "router_gate")

	rec := do(t, h, http.MethodGet, "/meals", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized."}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/meals/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMealCreateReusesExistingCookie(t *testing.T) {
	h := newTestRouter(t, "router_reuse")
	ana := createUser(t, h, "Ana", "ana@x.com", "secret1")
	existing := &http.Cookie{Name: "sessionId", Value: uuid.New().String()}

	rec := do(t, h, http.MethodPost, "/meals",
		`{"name":"Lunch","description":"rice","on_diet":true,"user_id":"`+ana.ID+`"}`, existing)
	require.Equal(t, http.StatusCreated, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, "sessionId", c.Name, "no new cookie when one is already present")
	}

	var listed struct {
		Meals []models.Meal `json:"meals"`
	}
	rec = do(t, h, http.MethodGet, "/meals", "", existing)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &listed)
	require.Len(t, listed.Meals, 1)
	assert.Equal(t, existing.Value, listed.Meals[0].SessionID)
}

func TestInvalidIDsReturn400(t *testing.T) {
	h := newTestRouter(t, "router_badid")
	cookie := &http.Cookie{Name: "sessionId", Value: uuid.New().String()}

	for _, rec := range []*httptest.ResponseRecorder{
		do(t, h, http.MethodGet, "/users/not-a-uuid", ""),
		do(t, h, http.MethodPut, "/users/not-a-uuid", `{"name":"Ana"}`),
		do(t, h, http.MethodDelete, "/users/not-a-uuid", ""),
		do(t, h, http.MethodGet, "/meals/not-a-uuid", "", cookie),
	} {
		assert.Equal(t, http.StatusBadRequest, rec.Code, "malformed ids are a 400, never 404 or 500")
		assert.Contains(t, rec.Body.String(), `"error"`)
	}
}

func TestUserNotFound(t *testing.T) {
	h := newTestRouter(t, "router_user404")
	rec := do(t, h, http.MethodGet, "/users/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found."}`, rec.Body.String())
}

func TestUpdateAndDeleteUnknownUserAreNoOps(t *testing.T) {
	h := newTestRouter(t, "router_noop")
	id := uuid.New().String()

	rec := do(t, h, http.MethodPut, "/users/"+id, `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/users/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPartialUserUpdate(t *testing.T) {
	h := newTestRouter(t, "router_partial")
	ana := createUser(t, h, "Ana", "ana@x.com", "secret1")

	time.Sleep(10 * time.Millisecond)
	rec := do(t, h, http.MethodPut, "/users/"+ana.ID, `{"name":"Ana Maria"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/"+ana.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		User models.User `json:"user"`
	}
	decodeInto(t, rec, &got)
	assert.Equal(t, "Ana Maria", got.User.Name)
	assert.Equal(t, "ana@x.com", got.User.Email)
	assert.Equal(t, "secret1", got.User.Password)
	assert.True(t, got.User.UpdatedAt.After(ana.UpdatedAt))
}

func TestCreateUserValidation(t *testing.T) {
	h := newTestRouter(t, "router_uservalidation")

	rec := do(t, h, http.MethodPost, "/users", `{"name":"ab","email":"nope","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"error"`
	}
	decodeInto(t, rec, &body)
	assert.Len(t, body.Error, 3)

	// Nothing was persisted.
	var listed struct {
		Users []models.User `json:"users"`
	}
	rec = do(t, h, http.MethodGet, "/users", "")
	decodeInto(t, rec, &listed)
	assert.Empty(t, listed.Users)
}

func TestCreateMealValidation(t *testing.T) {
	h := newTestRouter(t, "router_mealvalidation")

	rec := do(t, h, http.MethodPost, "/meals", `{"name":"Lunch","description":"rice","on_diet":true,"user_id":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_id")
}

func TestCreateMealUnknownUserFails(t *testing.T) {
	h := newTestRouter(t, "router_mealfk")

	rec := do(t, h, http.MethodPost, "/meals",
		`{"name":"Lunch","description":"rice","on_diet":true,"user_id":"`+uuid.New().String()+`"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
