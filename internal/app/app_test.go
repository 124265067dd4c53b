package app

import (
	"apiforge/internal/config"
	"apiforge/internal/repository/repotest"
	"apiforge/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "app-secret",
		SessionTTL:       "1h",
		SessionCookie:    "apiforge_session",
		PasswordResetTTL: "1h",
		AppURL:           "http://app.test",
		Env:              "dev",
	}
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := repotest.New()
	repos := Repos{
		Users:          store.Users(),
		Projects:       store.Projects(),
		Endpoints:      store.Endpoints(),
		PasswordResets: store.PasswordResets(),
	}
	srv := httptest.NewServer(NewRouter(testConfig(), repos, services.LogMailer{}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func call(t *testing.T, c *http.Client, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Endpoints []struct {
		Method   string `json:"method"`
		Path     string `json:"path"`
		JSONBody string `json:"jsonBody"`
	} `json:"endpoints"`
}

func TestFullScenario(t *testing.T) {
	srv := newServer(t)
	c := newClient(t)

	status := call(t, c, http.MethodPost, srv.URL+"/api/register", `{"name":"Olga","email":"olga@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, status)

	// Сессия живёт в cookie, Bearer дальше не нужен.
	status = call(t, c, http.MethodPost, srv.URL+"/api/login", `{"email":"olga@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, status)

	var me struct {
		Email string `json:"email"`
	}
	require.Equal(t, http.StatusOK, call(t, c, http.MethodGet, srv.URL+"/api/session", "", &me))
	assert.Equal(t, "olga@example.com", me.Email)

	var created project
	require.Equal(t, http.StatusOK, call(t, c, http.MethodPost, srv.URL+"/api/projects", `{"name":"Petstore"}`, &created))
	require.NotEmpty(t, created.ID)

	endpoints := srv.URL + "/api/projects/" + created.ID + "/endpoints"
	require.Equal(t, http.StatusOK, call(t, c, http.MethodPost, endpoints, `{"method":"POST","path":"/pets","jsonBody":"{\"id\":1}"}`, nil))
	require.Equal(t, http.StatusOK, call(t, c, http.MethodPost, endpoints, `{"method":"get","path":"/owners","jsonBody":"[]"}`, nil))

	var got project
	require.Equal(t, http.StatusOK, call(t, c, http.MethodGet, endpoints, "", &got))
	assert.Equal(t, "Petstore", got.Name)
	require.Len(t, got.Endpoints, 2)
	assert.Equal(t, "/owners", got.Endpoints[0].Path)
	assert.Equal(t, "GET", got.Endpoints[0].Method)
	assert.Equal(t, "/pets", got.Endpoints[1].Path)
	assert.JSONEq(t, `{"id":1}`, got.Endpoints[1].JSONBody)

	var list []project
	require.Equal(t, http.StatusOK, call(t, c, http.MethodGet, srv.URL+"/api/projects", "", &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	require.Equal(t, http.StatusOK, call(t, c, http.MethodPost, srv.URL+"/api/logout", "", nil))
	assert.Equal(t, http.StatusUnauthorized, call(t, c, http.MethodGet, srv.URL+"/api/projects", "", nil))
}

func TestProjectsIsolatedBetweenUsers(t *testing.T) {
	srv := newServer(t)
	alice, bob := newClient(t), newClient(t)

	for email, c := range map[string]*http.Client{"alice@example.com": alice, "bob@example.com": bob} {
		require.Equal(t, http.StatusOK, call(t, c, http.MethodPost, srv.URL+"/api/register", `{"name":"U","email":"`+email+`","password":"password123"}`, nil))
		require.Equal(t, http.StatusOK, call(t, c, http.MethodPost, srv.URL+"/api/login", `{"email":"`+email+`","password":"password123"}`, nil))
	}

	var p project
	require.Equal(t, http.StatusOK, call(t, alice, http.MethodPost, srv.URL+"/api/projects", `{"name":"Secret"}`, &p))

	var list []project
	require.Equal(t, http.StatusOK, call(t, bob, http.MethodGet, srv.URL+"/api/projects", "", &list))
	assert.Empty(t, list)
	assert.Equal(t, http.StatusNotFound, call(t, bob, http.MethodGet, srv.URL+"/api/projects/"+p.ID+"/endpoints", "", nil))
	assert.Equal(t, http.StatusForbidden, call(t, bob, http.MethodPost, srv.URL+"/api/projects/"+p.ID+"/endpoints", `{}`, nil))
}

func TestPagesAreServed(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/login")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
