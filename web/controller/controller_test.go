package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"secondplan/database"
	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/web/entity"
	"secondplan/web/middleware"
	"secondplan/web/service"
	"secondplan/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

var loggerOnce sync.Once

func setupRouter(t *testing.T) *gin.Engine {
	loggerOnce.Do(func() {
		os.Setenv("SP_LOG_FOLDER", os.TempDir())
		logger.InitLogger(logging.ERROR)
	})

	dbPath := "test.db"
	os.Remove(dbPath)
	assert.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		database.CloseDB()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions(session.CookieName, store))

	limiter := middleware.NewRateLimiter(10, time.Minute)
	NewIndexController(engine.Group("/"), limiter)

	api := engine.Group("/api", middleware.CsrfGuard())
	NewBookingController(api)
	NewTaskController(api)
	NewUserAdminController(api)

	return engine
}

// client carries the session cookie between requests like a browser would.
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine}
}

func (cl *client) do(method, path, contentType, body string, headers map[string]string) (*httptest.ResponseRecorder, entity.Msg) {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	cl.engine.ServeHTTP(w, req)
	// A response may carry several Set-Cookie headers for the same name;
	// only the last one is current, so merge by name.
	if cks := w.Result().Cookies(); len(cks) > 0 {
		jar := make(map[string]*http.Cookie, len(cl.cookies)+len(cks))
		order := make([]string, 0, len(cl.cookies)+len(cks))
		for _, ck := range append(cl.cookies, cks...) {
			if _, seen := jar[ck.Name]; !seen {
				order = append(order, ck.Name)
			}
			jar[ck.Name] = ck
		}
		cl.cookies = cl.cookies[:0]
		for _, name := range order {
			cl.cookies = append(cl.cookies, jar[name])
		}
	}

	var msg entity.Msg
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &msg)
	}
	return w, msg
}

func (cl *client) csrf() string {
	_, msg := cl.do(http.MethodGet, "/auth/csrf", "", "", nil)
	data, ok := msg.Data.(map[string]any)
	if !ok {
		cl.t.Fatal("no csrf token in response")
	}
	token, _ := data["token"].(string)
	return token
}

func (cl *client) login(email, password string) (*httptest.ResponseRecorder, entity.Msg) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	form.Set("_csrf", cl.csrf())
	return cl.do(http.MethodPost, "/auth/login", "application/x-www-form-urlencoded", form.Encode(), nil)
}

func TestLoginReturnsRoleAndRedirect(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	w, msg := cl.login("admin@secondplan.local", "Admin@123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, msg.Success)

	data, ok := msg.Data.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, model.RoleAdmin, data["role"])
	assert.Equal(t, "/admin/dashboard", data["redirect"])

	// The admin role passes the manager-only booking endpoints.
	w, msg = cl.do(http.MethodGet, "/api/bookings", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, msg.Success)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	w, msg := cl.login("admin@secondplan.local", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, msg.Success)
	assert.Equal(t, "Invalid email or password.", msg.Message)
}

func TestMutationWithoutCsrfTokenIsRejected(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	form := url.Values{}
	form.Set("email", "admin@secondplan.local")
	form.Set("password", "Admin@123")
	w, msg := cl.do(http.MethodPost, "/auth/login", "application/x-www-form-urlencoded", form.Encode(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or expired form token. Please reload and try again.", msg.Message)

	// The rejected request must not have established a session.
	w, _ = cl.do(http.MethodGet, "/api/bookings", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCsrfTokenIsConsumedOnUse(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	token := cl.csrf()
	body := `{"companyName":"ACME","eventName":"Launch party","eventDate":"2026-05-01"}`
	headers := map[string]string{"X-CSRF-Token": token}

	w, msg := cl.do(http.MethodPost, "/api/inquiries", "application/json", body, headers)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, msg.Success)
	assert.Greater(t, msg.Id, 0)

	// Replaying the consumed token fails and creates nothing.
	w, _ = cl.do(http.MethodPost, "/api/inquiries", "application/json", body, headers)
	assert.Equal(t, http.StatusForbidden, w.Code)

	bookings, err := (&service.BookingService{}).GetBookings(service.BookingFilter{})
	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, model.BookingPending, bookings[0].Status)
}

func TestExpiredCsrfTokenIsRejected(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	t.Setenv("SP_CSRF_TTL", "1")
	token := cl.csrf()
	time.Sleep(1500 * time.Millisecond)

	body := `{"companyName":"ACME","eventName":"Launch party","eventDate":"2026-05-01"}`
	w, msg := cl.do(http.MethodPost, "/api/inquiries", "application/json", body, map[string]string{"X-CSRF-Token": token})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, msg.Success)
}

func TestApiRequiresLogin(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	w, msg := cl.do(http.MethodGet, "/api/bookings", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Please log in to continue.", msg.Message)
}

func TestRoleGateForbidsBandMember(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	users := service.UserService{}
	_, err := users.Register("Bassist", "bass@example.com", "password1", "password1", model.RoleBandMember)
	assert.NoError(t, err)

	w, msg := cl.login("bass@example.com", "password1")
	assert.Equal(t, http.StatusOK, w.Code)
	data, _ := msg.Data.(map[string]any)
	assert.Equal(t, "/band/dashboard", data["redirect"])

	// Bookings are manager territory.
	w, msg = cl.do(http.MethodGet, "/api/bookings", "", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You do not have permission to access this resource.", msg.Message)

	// Tasks are open to band members.
	w, msg = cl.do(http.MethodGet, "/api/tasks", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, msg.Success)
}

func TestTaskUpdateRestrictedToAssignee(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	users := service.UserService{}
	assignee, err := users.Register("Singer", "singer@example.com", "password1", "password1", model.RoleBandMember)
	assert.NoError(t, err)
	_, err = users.Register("Bassist", "bass@example.com", "password1", "password1", model.RoleBandMember)
	assert.NoError(t, err)

	tasks := service.TaskService{}
	task := &model.Task{Title: "Soundcheck", AssigneeId: &assignee.Id}
	assert.NoError(t, tasks.CreateTask(task))

	w, _ := cl.login("bass@example.com", "password1")
	assert.Equal(t, http.StatusOK, w.Code)

	body := `{"title":"Soundcheck","status":"completed"}`
	headers := map[string]string{"X-CSRF-Token": cl.csrf()}
	w, msg := cl.do(http.MethodPut, "/api/tasks/"+strconv.Itoa(task.Id), "application/json", body, headers)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only the assignee or an admin may update this task.", msg.Message)

	cl2 := newClient(t, engine)
	w, _ = cl2.login("singer@example.com", "password1")
	assert.Equal(t, http.StatusOK, w.Code)

	headers = map[string]string{"X-CSRF-Token": cl2.csrf()}
	w, msg = cl2.do(http.MethodPut, "/api/tasks/"+strconv.Itoa(task.Id), "application/json", body, headers)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, msg.Success)

	stored, err := tasks.GetTask(task.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, stored.Status)
}

func TestUsersEndpointIsAdminOnly(t *testing.T) {
	engine := setupRouter(t)
	cl := newClient(t, engine)

	users := service.UserService{}
	_, err := users.Register("Client Carla", "carla@example.com", "password1", "password1", model.RoleClient)
	assert.NoError(t, err)

	w, _ := cl.login("carla@example.com", "password1")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = cl.do(http.MethodGet, "/api/users", "", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// /api/me works for any logged-in user.
	w, msg := cl.do(http.MethodGet, "/api/me", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data, _ := msg.Data.(map[string]any)
	assert.Equal(t, "carla@example.com", data["email"])
}

