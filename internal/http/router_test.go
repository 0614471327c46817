package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/you/hotelauthsvc/domain"
	"github.com/you/hotelauthsvc/internal/http/handlers"
	"github.com/you/hotelauthsvc/internal/http/middleware"
	"github.com/you/hotelauthsvc/internal/infrastructure/auth"
	"github.com/you/hotelauthsvc/internal/infrastructure/repositories"
	"github.com/you/hotelauthsvc/internal/mocks"
	"github.com/you/hotelauthsvc/internal/services"
)

type testStack struct {
	router      *gin.Engine
	accountRepo domain.AccountRepository
	orgRepo     domain.OrganizationRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	mailer      *mocks.MockMailer
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&repositories.DBAccount{}, &repositories.DBOrganization{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	// each pooled :memory: connection gets its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	log := logrus.New()
	log.SetOutput(io.Discard)

	accountRepo := repositories.NewAccountRepository(db)
	orgRepo := repositories.NewOrganizationRepository(db)
	sessionRepo := repositories.NewSessionRepository(redisClient, time.Hour)

	passwordSvc := auth.NewPasswordService(10)
	tokenSvc := auth.NewJWTService(
		"access-secret-0123456789abcdef0123456789abcdef",
		"refresh-secret-0123456789abcdef0123456789abcdef",
		"hotelauthsvc", "hotel-billing-portal",
		15*time.Minute, time.Hour,
	)
	generator := auth.NewCredentialGenerator()
	mailer := mocks.NewMockMailer()

	enforcer, err := auth.NewMemoryEnforcer()
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}
	if _, err := enforcer.AddPolicy("role_admin", "/api/organizations", "(GET|POST)"); err != nil {
		t.Fatalf("failed to seed policy: %v", err)
	}
	if _, err := enforcer.AddPolicy("role_admin", "/api/organizations/*", "POST"); err != nil {
		t.Fatalf("failed to seed policy: %v", err)
	}

	authSvc := services.NewAuthService(accountRepo, sessionRepo, passwordSvc, tokenSvc, time.Hour)
	corpSvc := services.NewCorporateService(orgRepo, sessionRepo, passwordSvc, tokenSvc, time.Hour)
	provSvc := services.NewProvisioningService(orgRepo, passwordSvc, generator, mailer, log)

	router := BuildRouter(
		handlers.NewAuthHandlers(authSvc, log),
		handlers.NewCorporateHandlers(corpSvc, log),
		handlers.NewOrganizationHandlers(provSvc, log),
		middleware.NewAuthMW(tokenSvc),
		middleware.NewCasbinMW(enforcer),
		[]string{"*"},
	)

	return &testStack{
		router:      router,
		accountRepo: accountRepo,
		orgRepo:     orgRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
	}
}

func (ts *testStack) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// createAdmin seeds an admin directly; registration never grants the role.
func (ts *testStack) createAdmin(t *testing.T, email, password string) {
	t.Helper()
	hash, err := ts.passwordSvc.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	err = ts.accountRepo.Create(context.Background(), &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
}

type tokenPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func decodeTokens(t *testing.T, w *httptest.ResponseRecorder) tokenPayload {
	t.Helper()
	var resp struct {
		Data tokenPayload `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode token response: %v (%s)", err, w.Body.String())
	}
	return resp.Data
}

func TestPortalAuthenticationFlow(t *testing.T) {
	ts := newTestStack(t)

	w := ts.do(t, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"Sup3r$ecret!"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"Sup3r$ecret!"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	tokens := decodeTokens(t, w)
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("login response missing tokens")
	}
	if tokens.ExpiresIn != 900 {
		t.Errorf("expected 900s access expiry, got %d", tokens.ExpiresIn)
	}

	w = ts.do(t, http.MethodGet, "/api/auth/me", "", tokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"email":"alice@example.com"`) {
		t.Errorf("profile missing email: %s", w.Body.String())
	}

	// Tampered tokens fail with the same body as every other rejection.
	w = ts.do(t, http.MethodGet, "/api/auth/me", "", tokens.AccessToken[:len(tokens.AccessToken)-1])
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("truncated token: expected 401, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Unauthorized"}` {
		t.Errorf("rejection body must be uniform, got %s", w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, tokens.RefreshToken), "")
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Staff password rotation: the old password stops working, the new logs in.
	w = ts.do(t, http.MethodPost, "/api/auth/set-password",
		`{"current_password":"Sup3r$ecret!","new_password":"Ev3n$tr0nger#Pass"}`, tokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("set-password: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = ts.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"Sup3r$ecret!"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login with old password: expected 401, got %d", w.Code)
	}
	w = ts.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"Ev3n$tr0nger#Pass"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login with new password: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Access tokens cannot stand in for refresh tokens.
	w = ts.do(t, http.MethodPost, "/api/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, tokens.AccessToken), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh with access token: expected 401, got %d", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/auth/logout", "", tokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The revoked session can no longer mint access tokens.
	w = ts.do(t, http.MethodPost, "/api/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, tokens.RefreshToken), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOrganizationProvisioningFlow(t *testing.T) {
	ts := newTestStack(t)
	ts.createAdmin(t, "admin@example.com", "Adm1n$ecret!")

	w := ts.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"Adm1n$ecret!"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	adminTokens := decodeTokens(t, w)

	// Unauthenticated and non-admin callers are kept out.
	w = ts.do(t, http.MethodPost, "/api/organizations",
		`{"name":"Skyline Hotels Ltd","contact_email":"billing@skyline.example"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous provisioning: expected 401, got %d", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/auth/register",
		`{"email":"bob@example.com","password":"Sup3r$ecret!"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}
	financeTokens := decodeTokens(t, w)
	w = ts.do(t, http.MethodPost, "/api/organizations",
		`{"name":"Skyline Hotels Ltd","contact_email":"billing@skyline.example"}`, financeTokens.AccessToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("finance provisioning: expected 403, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/organizations",
		`{"name":"Skyline Hotels Ltd","contact_email":"billing@skyline.example","credit_term_days":30}`, adminTokens.AccessToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("provisioning: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Data struct {
			Organization struct {
				OrgID   string `json:"org_id"`
				LoginID string `json:"login_id"`
				Status  string `json:"status"`
			} `json:"organization"`
			Credentials struct {
				LoginID  string `json:"login_id"`
				Password string `json:"password"`
			} `json:"credentials"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode provisioning response: %v", err)
	}
	if created.Data.Organization.Status != domain.StatusActive {
		t.Errorf("expected active status, got %q", created.Data.Organization.Status)
	}
	if created.Data.Credentials.Password == "" {
		t.Fatal("expected a one-time password")
	}

	// The same contact email cannot be provisioned twice.
	w = ts.do(t, http.MethodPost, "/api/organizations",
		`{"name":"Another Chain","contact_email":"billing@skyline.example"}`, adminTokens.AccessToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodGet, "/api/organizations", "", adminTokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), created.Data.Organization.OrgID) {
		t.Errorf("listing missing provisioned org: %s", w.Body.String())
	}

	// Corporate login with the issued credentials.
	w = ts.do(t, http.MethodPost, "/api/auth/corporate/login",
		fmt.Sprintf(`{"login_id":%q,"password":%q}`, created.Data.Credentials.LoginID, created.Data.Credentials.Password), "")
	if w.Code != http.StatusOK {
		t.Fatalf("corporate login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	corpTokens := decodeTokens(t, w)

	w = ts.do(t, http.MethodGet, "/api/auth/corporate/me", "", corpTokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("corporate me: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Scope fencing both ways.
	w = ts.do(t, http.MethodGet, "/api/auth/corporate/me", "", adminTokens.AccessToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("portal token on corporate route: expected 401, got %d", w.Code)
	}
	w = ts.do(t, http.MethodGet, "/api/organizations", "", corpTokens.AccessToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("corporate token on admin route: expected 401, got %d", w.Code)
	}

	// Credential delivery rotates the password and mails the new one.
	mailed := ""
	ts.mailer.SendCredentialsFunc = func(to, orgName, loginID, password string) error {
		mailed = password
		return nil
	}
	w = ts.do(t, http.MethodPost, "/api/organizations/send-credentials",
		fmt.Sprintf(`{"org_id":%q}`, created.Data.Organization.OrgID), adminTokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("send-credentials: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mailed == "" {
		t.Fatal("expected a rotated password to be mailed")
	}
	if mailed == created.Data.Credentials.Password {
		t.Error("rotation must issue a new password")
	}

	// The original password no longer works; the mailed one does.
	w = ts.do(t, http.MethodPost, "/api/auth/corporate/login",
		fmt.Sprintf(`{"login_id":%q,"password":%q}`, created.Data.Credentials.LoginID, created.Data.Credentials.Password), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("old password: expected 401, got %d", w.Code)
	}
	w = ts.do(t, http.MethodPost, "/api/auth/corporate/login",
		fmt.Sprintf(`{"login_id":%q,"password":%q}`, created.Data.Credentials.LoginID, mailed), "")
	if w.Code != http.StatusOK {
		t.Fatalf("rotated password: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestConcurrentProvisioningSameContactEmail(t *testing.T) {
	ts := newTestStack(t)
	ts.createAdmin(t, "admin@example.com", "Adm1n$ecret!")

	w := ts.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"Adm1n$ecret!"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	adminTokens := decodeTokens(t, w)

	// Two racing submissions for the same contact email: the database unique
	// constraint must let exactly one through.
	body := `{"name":"Racing Hotels Ltd","contact_email":"race@skyline.example"}`
	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := ts.do(t, http.MethodPost, "/api/organizations", body, adminTokens.AccessToken)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	counts := make(map[int]int)
	for code := range codes {
		counts[code]++
	}
	if counts[http.StatusCreated] != 1 || counts[http.StatusConflict] != 1 {
		t.Fatalf("expected exactly one 201 and one 409, got %v", counts)
	}

	w = ts.do(t, http.MethodGet, "/api/organizations", "", adminTokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	if n := strings.Count(w.Body.String(), "race@skyline.example"); n != 1 {
		t.Errorf("expected exactly one stored organization for the email, found %d", n)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestStack(t)
	w := ts.do(t, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
