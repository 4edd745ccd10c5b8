package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"bitwise74/matrix-api/db"
	"bitwise74/matrix-api/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

var dbCounter atomic.Int64

// fakeMailer records outbound mail instead of delivering it, so tests can
// read the emailed codes the way a user would.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []*service.Mail
	failNext bool
}

func (f *fakeMailer) Send(m *service.Mail) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext {
		f.failNext = false
		return errors.New("smtp relay unreachable")
	}

	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMailer) last() *service.Mail {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.sent) == 0 {
		return nil
	}

	return f.sent[len(f.sent)-1]
}

func newTestAPI(t *testing.T) (*API, *fakeMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("jwt.secret", "test-secret")
	viper.Set("security.rate_limit", 1000)
	viper.Set("host.domain", "localhost")

	// cors.New refuses a config with every origin disabled, so the router
	// cannot even be built without this
	viper.Set("host.cors_origins", []string{"http://localhost:5173"})

	// A named shared-cache DSN keeps the in-memory database alive across
	// the pool's connections and isolated between tests
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", dbCounter.Add(1))

	database, err := db.New(dsn)
	require.NoError(t, err)

	mailer := &fakeMailer{}

	return New(database, mailer), mailer
}

func doJSON(t *testing.T, a *API, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

// registerUser registers an account and returns the emailed code.
func registerUser(t *testing.T, a *API, mailer *fakeMailer, username, email, password string) string {
	t.Helper()

	w := doJSON(t, a, "POST", "/api/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, 201, w.Code, w.Body.String())

	mail := mailer.last()
	require.NotNil(t, mail)
	require.Equal(t, service.PurposeVerification, mail.Purpose)

	return mail.Code
}

// activeUserToken registers and verifies an account, returning a session
// token usable against the matrix endpoints.
func activeUserToken(t *testing.T, a *API, mailer *fakeMailer, username, email string) string {
	t.Helper()

	code := registerUser(t, a, mailer, username, email, "Passw0rd!")

	w := doJSON(t, a, "POST", "/api/auth/verifyCode", gin.H{
		"email": email,
		"code":  code,
	}, "")
	require.Equal(t, 200, w.Code, w.Body.String())

	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	return token
}

func validMatrixBody() gin.H {
	return gin.H{
		"name":        "Urban problems",
		"description": "City analysis",
		"references":  [][]int{{0, 1}, {1, 0}},
		"problems": []gin.H{
			{"name": "A", "description": "d", "orderNumber": 0},
			{"name": "B", "description": "d", "orderNumber": 1},
		},
	}
}
