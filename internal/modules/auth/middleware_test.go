package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/user"
)

type stubVerifier struct {
	subject string
}

func (s *stubVerifier) Login(ctx context.Context, email, password string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubVerifier) VerifyToken(tokenString string) (string, error) {
	if tokenString != "valid-token" {
		return "", ErrNotAuthenticated
	}
	return s.subject, nil
}

type memoryUsers struct {
	users map[string]*user.User
}

func (m *memoryUsers) CreateUser(ctx context.Context, u *user.User) error { return nil }
func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, errors.New("not found")
}
func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}
func (m *memoryUsers) ListUsers(ctx context.Context) ([]*user.User, error) { return nil, nil }
func (m *memoryUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	return nil
}
func (m *memoryUsers) SetDisabled(ctx context.Context, id string, disabled bool) error {
	u, err := m.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	u.Disabled = disabled
	return nil
}
func (m *memoryUsers) DeleteUser(ctx context.Context, id string) error { return nil }

type memoryProfiles struct {
	profiles map[string]*profile.Profile
}

func (m *memoryProfiles) Create(ctx context.Context, p *profile.Profile) error { return nil }
func (m *memoryProfiles) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}
func (m *memoryProfiles) ListByOrganization(ctx context.Context, orgID string) ([]*profile.Profile, error) {
	return nil, nil
}
func (m *memoryProfiles) UpdateRoleStore(ctx context.Context, id string, role profile.Role, storeID *string) error {
	return nil
}
func (m *memoryProfiles) Delete(ctx context.Context, id string) error { return nil }

func authedRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func TestAuthenticate_LoadsProfileIntoContext(t *testing.T) {
	id := uuid.New()
	users := &memoryUsers{users: map[string]*user.User{
		id.String(): {ID: id, Email: "hq@petmark.example"},
	}}
	profiles := &memoryProfiles{profiles: map[string]*profile.Profile{
		id.String(): {ID: id, OrganizationID: uuid.New(), Role: profile.RoleHQ},
	}}
	mw := NewMiddleware(&stubVerifier{subject: id.String()}, users, profiles)

	var got *profile.Profile
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ProfileFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.ID != id {
		t.Errorf("profile in context = %v, want id %v", got, id)
	}
}

func TestAuthenticate_RejectsDisabledIdentity(t *testing.T) {
	id := uuid.New()
	users := &memoryUsers{users: map[string]*user.User{
		id.String(): {ID: id, Email: "hq@petmark.example"},
	}}
	profiles := &memoryProfiles{profiles: map[string]*profile.Profile{
		id.String(): {ID: id, OrganizationID: uuid.New(), Role: profile.RoleHQ},
	}}
	mw := NewMiddleware(&stubVerifier{subject: id.String()}, users, profiles)

	reached := false
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	// Token still valid, identity disabled after issuance.
	if err := users.SetDisabled(context.Background(), id.String(), true); err != nil {
		t.Fatalf("SetDisabled: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest())

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if reached {
		t.Error("disabled identity reached the handler")
	}
	if !strings.Contains(rec.Body.String(), ErrAccountDisabled.Error()) {
		t.Errorf("body = %q, want the disabled-account message", rec.Body.String())
	}
}

func TestAuthenticate_RejectsMissingProfile(t *testing.T) {
	id := uuid.New()
	users := &memoryUsers{users: map[string]*user.User{
		id.String(): {ID: id, Email: "orphan@petmark.example"},
	}}
	mw := NewMiddleware(&stubVerifier{subject: id.String()}, users, &memoryProfiles{profiles: map[string]*profile.Profile{}})

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("profile-less identity reached the handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest())

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
