package bootstrap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/danahub/internal/app/apiclient"
	"github.com/dalemusser/danahub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validConfig(apiURL string) AppConfig {
	return AppConfig{
		APIBaseURL:      apiURL,
		APITimeout:      5 * time.Second,
		AssignmentStore: StoreMemory,
		SeedSampleData:  true,
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "danahub_test",
		SessionKey:      "test-session-key-0123456789ABCDEFGHIJ",
		SessionName:     "danahub-test",
		SessionMaxAge:   time.Hour,
		TimeZone:        "Asia/Colombo",
		AuditLogAuth:    "log",
		AuditLogAdmin:   "log",
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"memory store", func(*AppConfig) {}, false},
		{"api store", func(c *AppConfig) { c.AssignmentStore = StoreAPI }, false},
		{"mongo store", func(c *AppConfig) { c.AssignmentStore = StoreMongo }, false},
		{"unknown store", func(c *AppConfig) { c.AssignmentStore = "redis" }, true},
		{"mongo with bad uri", func(c *AppConfig) { c.AssignmentStore = StoreMongo; c.MongoURI = "http://nope" }, true},
		{"mongo without database", func(c *AppConfig) { c.AssignmentStore = StoreMongo; c.MongoDatabase = " " }, true},
		{"relative api url", func(c *AppConfig) { c.APIBaseURL = "localhost:8080" }, true},
		{"bad time zone", func(c *AppConfig) { c.TimeZone = "Mars/Olympus" }, true},
		{"negative refresh", func(c *AppConfig) { c.CacheRefreshInterval = -time.Second }, true},
		{"negative rate limit", func(c *AppConfig) { c.SignInRateLimit = -1 }, true},
		{"bad audit mode", func(c *AppConfig) { c.AuditLogAdmin = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig("http://localhost:8080")
			tt.mutate(&cfg)
			err := validateAppConfig(cfg, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAppConfig: err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRepository(t *testing.T) {
	ctx := context.Background()
	client, err := apiclient.NewClient(apiclient.Config{BaseURL: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	cfg := validConfig("http://localhost:8080")
	repo, err := newRepository(ctx, cfg, DBDeps{}, client, zap.NewNop())
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if list, _ := repo.List(ctx); len(list) != 3 {
		t.Errorf("seeded memory store: got %d assignments, want 3", len(list))
	}

	cfg.SeedSampleData = false
	repo, err = newRepository(ctx, cfg, DBDeps{}, client, zap.NewNop())
	if err != nil {
		t.Fatalf("memory unseeded: %v", err)
	}
	if list, _ := repo.List(ctx); len(list) != 0 {
		t.Errorf("unseeded memory store: got %d assignments, want 0", len(list))
	}

	cfg.AssignmentStore = StoreAPI
	repo, err = newRepository(ctx, cfg, DBDeps{}, client, zap.NewNop())
	if err != nil {
		t.Fatalf("api: %v", err)
	}
	if _, ok := repo.(*apiclient.Assignments); !ok {
		t.Errorf("api store: got %T", repo)
	}

	cfg.AssignmentStore = StoreMongo
	if _, err := newRepository(ctx, cfg, DBDeps{}, client, zap.NewNop()); err == nil {
		t.Error("mongo store without a database: expected error")
	}
}

func TestNewRepository_MongoSeedsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cfg := validConfig("http://localhost:8080")
	cfg.AssignmentStore = StoreMongo
	client, _ := apiclient.NewClient(apiclient.Config{BaseURL: cfg.APIBaseURL})
	deps := DBDeps{MongoDatabase: db}

	for i := 0; i < 2; i++ {
		repo, err := newRepository(ctx, cfg, deps, client, zap.NewNop())
		if err != nil {
			t.Fatalf("newRepository #%d: %v", i+1, err)
		}
		if list, _ := repo.List(ctx); len(list) != 3 {
			t.Errorf("pass %d: got %d assignments, want 3", i+1, len(list))
		}
	}
}

func TestConnectDB_SkipsWithoutMongo(t *testing.T) {
	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, validConfig("http://localhost:8080"), zap.NewNop())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.MongoClient != nil || deps.MongoDatabase != nil {
		t.Error("memory store should not connect to MongoDB")
	}
	if deps.Services == nil {
		t.Error("Services must be allocated for Startup")
	}
	if err := EnsureSchema(context.Background(), &config.CoreConfig{}, validConfig(""), deps, zap.NewNop()); err != nil {
		t.Errorf("EnsureSchema without MongoDB: %v", err)
	}
}

func TestBuildHandler_RequiresStartup(t *testing.T) {
	if _, err := BuildHandler(&config.CoreConfig{}, validConfig(""), DBDeps{}, zap.NewNop()); err == nil {
		t.Error("expected error when Startup has not run")
	}
}

// startApp runs the lifecycle hooks against an in-memory external API and
// returns a client with a cookie jar pointed at the app.
func startApp(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	api := testutil.NewExternalAPI(t)
	appCfg := validConfig(api.URL)
	appCfg.CacheRefreshInterval = time.Hour
	appCfg.SignInRateLimit = 5
	coreCfg := &config.CoreConfig{Env: "dev"}
	logger := zap.NewNop()
	ctx := context.Background()

	deps, err := ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if err := Startup(ctx, coreCfg, appCfg, deps, logger); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	t.Cleanup(func() {
		if err := Shutdown(context.Background(), coreCfg, appCfg, deps, logger); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})
	if deps.Services.Refresher == nil || deps.Services.SignIn == nil {
		t.Error("background services were not started")
	}

	h, err := BuildHandler(coreCfg, appCfg, deps, logger)
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	client := srv.Client()
	client.Jar = jar
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	return srv, client
}

func getJSON(t *testing.T, c *http.Client, url string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Accept", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestApp_EndToEnd(t *testing.T) {
	srv, c := startApp(t)

	if resp := getJSON(t, c, srv.URL+"/health"); resp.StatusCode != http.StatusOK {
		t.Errorf("/health: got %d", resp.StatusCode)
	}
	if resp := getJSON(t, c, srv.URL+"/assignments"); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("/assignments signed out: got %d, want 401", resp.StatusCode)
	}
	if resp := getJSON(t, c, srv.URL+"/"); resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/session" {
		t.Errorf("/ signed out: got %d to %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/session", strings.NewReader(`{"name":"Ananda","role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sign in: got %d", resp.StatusCode)
	}

	resp = getJSON(t, c, srv.URL+"/assignments")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/assignments: got %d", resp.StatusCode)
	}
	var list struct {
		Total       int `json:"total"`
		Assignments []struct {
			CanDelete bool `json:"canDelete"`
		} `json:"assignments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 3 || len(list.Assignments) != 3 || !list.Assignments[0].CanDelete {
		t.Errorf("assignments: %+v", list)
	}

	for _, path := range []string{"/danas", "/families", "/temples", "/assignments/pairings", "/session"} {
		if resp := getJSON(t, c, srv.URL+path); resp.StatusCode != http.StatusOK {
			t.Errorf("%s: got %d", path, resp.StatusCode)
		}
	}

	resp = getJSON(t, c, srv.URL+"/metrics")
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "go_goroutines") {
		t.Errorf("/metrics: got %d", resp.StatusCode)
	}
}
