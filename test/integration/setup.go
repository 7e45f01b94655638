package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	handler "github.com/vncsmyrnk/signup/internal/adapters/handler/http"
	"github.com/vncsmyrnk/signup/internal/adapters/signupapi"
	"github.com/vncsmyrnk/signup/internal/adapters/view"
	"github.com/vncsmyrnk/signup/internal/core/services"
)

// FakeSignupAPI imitates the remote signup endpoint: it requires name, phone
// and email and answers with the same JSON shapes as the real service.
type FakeSignupAPI struct {
	mu       sync.Mutex
	Received []url.Values
	Headers  []http.Header
	FailWith int
}

func (f *FakeSignupAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	values, err := url.ParseQuery(string(body))

	f.mu.Lock()
	f.Received = append(f.Received, values)
	f.Headers = append(f.Headers, r.Header.Clone())
	failWith := f.FailWith
	f.mu.Unlock()

	if failWith != 0 {
		w.WriteHeader(failWith)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	errs := map[string]string{}
	for _, k := range []string{"name", "phone", "email"} {
		if strings.TrimSpace(values.Get(k)) == "" {
			errs[k] = "This field is required."
		}
	}
	if email := values.Get("email"); email != "" && !strings.Contains(email, "@") {
		errs["email"] = "Invalid email address."
	}

	w.Header().Set("Content-Type", "application/json")
	if len(errs) > 0 {
		json.NewEncoder(w).Encode(map[string]any{"status": "error", "errors": errs})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
}

func (f *FakeSignupAPI) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Received)
}

type TestApp struct {
	Remote    *FakeSignupAPI
	RemoteSrv *httptest.Server
	Server    *httptest.Server
	Client    *http.Client
}

func setupTestApp(t *testing.T, opts ...view.Option) *TestApp {
	t.Helper()

	remote := &FakeSignupAPI{}
	remoteSrv := httptest.NewServer(remote)

	renderer, err := view.New(opts...)
	require.NoError(t, err)

	svc := services.NewSignupService(signupapi.NewClient(remoteSrv.URL+"/signup_api", 5*time.Second))
	router := handler.NewHandler(handler.NewSignupHandler(svc, renderer))
	server := httptest.NewServer(router)

	return &TestApp{
		Remote:    remote,
		RemoteSrv: remoteSrv,
		Server:    server,
		Client:    server.Client(),
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.RemoteSrv.Close()
}

func (app *TestApp) submit(t *testing.T, form url.Values) string {
	t.Helper()
	resp, err := app.Client.PostForm(app.Server.URL+"/", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
