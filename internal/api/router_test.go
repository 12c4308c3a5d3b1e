package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/api"
	"github.com/waxads/easy-grown/internal/auth"
	"github.com/waxads/easy-grown/internal/storage"
	"github.com/waxads/easy-grown/internal/upload"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router    *gin.Engine
	store     *storage.MemoryStorage
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerAt(t, t.TempDir())
}

// newTestServerAt stores uploads in dir and caps request bodies at 1 MiB.
func newTestServerAt(t *testing.T, dir string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStorage()
	sink := upload.NewSink(dir).WithClock(func() time.Time { return time.UnixMilli(1700000000000) })
	app := api.NewApplication(internal.NewNopLogger(), store, sink, auth.NewBcryptHasher(bcrypt.MinCost))
	r := api.NewRouter(app, api.RouterOptions{UploadDir: dir, MaxUploadBytes: 1 << 20})
	return &testServer{router: r, store: store, uploadDir: dir}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func multipartBody(t *testing.T, fields map[string][]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, vals := range fields {
		for _, v := range vals {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("imageFile", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestRegister_FirstUserGetsID1(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/register", `{"name":"A","email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User registered","id":1}`, w.Body.String())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/register", `{"name":"A","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "POST", "/api/register", `{"name":"B","email":"a@x.com","password":"q"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body internal.AppError
	decode(t, w, &body)
	assert.Equal(t, api.MsgDuplicateEmail, body.Message)
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusBadRequest, body.Code)

	// the first account still logs in with its own password
	w = s.do(t, "POST", "/api/login", `{"email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	s := newTestServer(t)

	passwords := map[string]string{
		"73 ascii bytes": strings.Repeat("a", 73),
		"25 thai runes":  strings.Repeat("ก", 25),
	}
	for name, pw := range passwords {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, "POST", "/api/register", `{"name":"A","email":"long@x.com","password":"`+pw+`"}`)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body internal.AppError
			decode(t, w, &body)
			assert.Equal(t, api.MsgPasswordTooLong, body.Message)
		})
	}

	// nothing was stored
	w := s.do(t, "POST", "/api/login", `{"email":"long@x.com","password":"a"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 72 bytes is still accepted
	w = s.do(t, "POST", "/api/register", `{"name":"A","email":"long@x.com","password":"`+strings.Repeat("a", 72)+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_MissingField(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/register", `{"name":"A","email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, "POST", "/api/register", `{"name":"A","email":"a@x.com","password":"p"}`).Code)

	t.Run("success", func(t *testing.T) {
		w := s.do(t, "POST", "/api/login", `{"email":"a@x.com","password":"p"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"user":{"id":1,"name":"A","email":"a@x.com","role":"user"}}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, "POST", "/api/login", `{"email":"a@x.com","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body internal.AppError
		decode(t, w, &body)
		assert.Equal(t, api.MsgWrongPassword, body.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := s.do(t, "POST", "/api/login", `{"email":"b@x.com","password":"p"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		var body internal.AppError
		decode(t, w, &body)
		assert.Equal(t, api.MsgUserNotFound, body.Message)
	})

	t.Run("malformed", func(t *testing.T) {
		w := s.do(t, "POST", "/api/login", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPlantingLog_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/planting-log", `{
		"ownerEmail":"a@x.com","vegetableId":3,"vegetableName":"Tomato","status":"growing",
		"plantedDate":"2024-05-01","expectedDate":"2024-07-01","location":"bed 2",
		"notes":"","wateringIntervalDays":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Log added","id":1}`, w.Body.String())

	var logs []internal.PlantingLog
	w = s.do(t, "GET", "/api/planting-log?email=a@x.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "2024-05-01", logs[0].LastWateredDate)
	assert.Equal(t, "Tomato", logs[0].VegetableName)
	assert.Equal(t, 2, logs[0].WateringIntervalDays)

	w = s.do(t, "PUT", "/api/planting-log/1", `{"status":"harvested"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Status updated"}`, w.Body.String())

	w = s.do(t, "PUT", "/api/planting-log/1/water", `{"lastWateredDate":"2024-05-03"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Watered successfully"}`, w.Body.String())

	w = s.do(t, "GET", "/api/planting-log?email=a@x.com", "")
	decode(t, w, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "harvested", logs[0].Status)
	assert.Equal(t, "2024-05-03", logs[0].LastWateredDate)
	assert.Equal(t, "2024-05-01", logs[0].PlantedDate)

	w = s.do(t, "GET", "/api/planting-log?email=b@x.com", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPlantingLog_RequiresEmail(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/api/planting-log", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body internal.AppError
	decode(t, w, &body)
	assert.Equal(t, api.MsgEmailRequired, body.Message)
}

func TestPlantingLog_BadRequests(t *testing.T) {
	s := newTestServer(t)

	cases := map[string][3]string{
		"unknown field":    {"POST", "/api/planting-log", `{"ownerEmail":"a@x.com","status":"s","plantedDate":"d","colour":"red"}`},
		"missing status":   {"POST", "/api/planting-log", `{"ownerEmail":"a@x.com","plantedDate":"d"}`},
		"negative days":    {"POST", "/api/planting-log", `{"ownerEmail":"a@x.com","status":"s","plantedDate":"d","wateringIntervalDays":-1}`},
		"non-numeric id":   {"PUT", "/api/planting-log/abc", `{"status":"s"}`},
		"empty status":     {"PUT", "/api/planting-log/1", `{"status":""}`},
		"missing date":     {"PUT", "/api/planting-log/1/water", `{}`},
		"water id not int": {"PUT", "/api/planting-log/x/water", `{"lastWateredDate":"d"}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, tc[0], tc[1], tc[2])
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestPlantingStatus_UnknownIDSucceeds(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "PUT", "/api/planting-log/99", `{"status":"dead"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVegetables_CreateWithImage(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string][]string{
		"name":        {"Tomato"},
		"harvestTime": {"60 days"},
		"water":       {`["morning","evening"]`},
		"sunlight":    {"full"},
		"months":      {"Nov-Feb"},
		"regions":     {"north", "south"},
		"description": {"red"},
		"steps":       {`["sow"]`},
	}, "tomato.png", []byte("png-bytes"))

	req := httptest.NewRequest("POST", "/api/vegetables", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Success","id":1}`, w.Body.String())

	stored, err := os.ReadFile(filepath.Join(s.uploadDir, "1700000000000.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	w = s.do(t, "GET", "/api/vegetables", "")
	require.Equal(t, http.StatusOK, w.Code)
	var vegs []map[string]interface{}
	decode(t, w, &vegs)
	require.Len(t, vegs, 1)
	assert.Equal(t, "/uploads/1700000000000.png", vegs[0]["image_url"])
	assert.Equal(t, "/uploads/1700000000000.png", vegs[0]["image"])
	assert.Equal(t, []interface{}{"morning", "evening"}, vegs[0]["water"])
	assert.Equal(t, []interface{}{"north", "south"}, vegs[0]["regions"])
	assert.Equal(t, []interface{}{}, vegs[0]["more_tips"])
	assert.Equal(t, []interface{}{}, vegs[0]["moreTips"])

	// the stored file is served under /uploads
	w = s.do(t, "GET", "/uploads/1700000000000.png", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestVegetables_CreateWithoutImage(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string][]string{"name": {"Basil"}}, "", nil)
	req := httptest.NewRequest("POST", "/api/vegetables", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var vegs []internal.Vegetable
	decode(t, s.do(t, "GET", "/api/vegetables", ""), &vegs)
	require.Len(t, vegs, 1)
	assert.Equal(t, "", vegs[0].ImageURL)
	assert.Equal(t, []string{}, vegs[0].Water)
}

func postVegetable(t *testing.T, s *testServer, fields map[string][]string, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, fileName, content)
	req := httptest.NewRequest("POST", "/api/vegetables", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestVegetables_BodyOverLimit(t *testing.T) {
	s := newTestServer(t)

	w := postVegetable(t, s, map[string][]string{"name": {"Pumpkin"}}, "big.jpg", bytes.Repeat([]byte("x"), 2<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var body internal.AppError
	decode(t, w, &body)
	assert.Equal(t, api.MsgUploadTooLarge, body.Message)

	assert.JSONEq(t, `[]`, s.do(t, "GET", "/api/vegetables", "").Body.String())
	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVegetables_UploadWriteFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))
	s := newTestServerAt(t, blocker)

	w := postVegetable(t, s, map[string][]string{"name": {"Chili"}}, "chili.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body internal.AppError
	decode(t, w, &body)
	assert.Equal(t, api.MsgUploadFailed, body.Message)

	assert.JSONEq(t, `[]`, s.do(t, "GET", "/api/vegetables", "").Body.String())
}

func TestVegetables_MalformedList(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string][]string{"name": {"Basil"}, "steps": {`["unterminated`}}, "", nil)
	req := httptest.NewRequest("POST", "/api/vegetables", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVegetables_DeleteIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string][]string{"name": {"Basil"}}, "", nil)
	req := httptest.NewRequest("POST", "/api/vegetables", body)
	req.Header.Set("Content-Type", contentType)
	s.router.ServeHTTP(httptest.NewRecorder(), req)

	for i := 0; i < 2; i++ {
		w := s.do(t, "DELETE", "/api/vegetables/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Deleted successfully"}`, w.Body.String())
	}
	assert.JSONEq(t, `[]`, s.do(t, "GET", "/api/vegetables", "").Body.String())

	w := s.do(t, "DELETE", "/api/vegetables/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreFailureHidesCause(t *testing.T) {
	s := newTestServer(t)
	s.store.FailWith(storage.ErrUnavailable)

	for _, path := range []string{"/api/vegetables", "/api/planting-log?email=a@x.com"} {
		w := s.do(t, "GET", path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body internal.AppError
		decode(t, w, &body)
		assert.Equal(t, api.MsgDatabaseError, body.Message)
		assert.NotContains(t, w.Body.String(), "unavailable")
	}

	w := s.do(t, "POST", "/api/register", `{"name":"A","email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body internal.AppError
	decode(t, w, &body)
	assert.Equal(t, api.MsgRegisterFailed, body.Message)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	s.store.FailWith(storage.ErrUnavailable)
	w = s.do(t, "GET", "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/api/vegetables", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/api/vegetables", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/vegetables", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
