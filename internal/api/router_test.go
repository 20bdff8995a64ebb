package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/certchain/certificate-system/internal/api/handler"
	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

const testSecret = "router-secret"

type fakeAuth struct{}

func (fakeAuth) SignIn(ctx context.Context, code, password string) (string, *domain.User, error) {
	if code == "S001" && password == "pw" {
		return "tok", &domain.User{ID: "u1", Code: code, Role: domain.RoleStudent}, nil
	}
	return "", nil, domain.ErrInvalidCredentials
}

type fakeUsers struct{}

func (fakeUsers) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "new", Code: in.Code, Name: in.Name, Role: in.Role}, nil
}

func (fakeUsers) ByCode(ctx context.Context, code string) (*domain.User, error) {
	if code != "S001" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: "u1", Code: code, Role: domain.RoleStudent}, nil
}

func (fakeUsers) ByID(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Code: "S001", Role: domain.RoleStudent}, nil
}

func (fakeUsers) List(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (fakeUsers) Update(ctx context.Context, actor ports.Actor, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return &domain.User{ID: id, Code: actor.Code, Role: actor.Role}, nil
}

type fakeCerts struct{}

func (fakeCerts) ListTypes(ctx context.Context) ([]*domain.CertificateType, error) {
	return []*domain.CertificateType{{ID: "t1", Name: "Go"}}, nil
}

func (fakeCerts) CreateType(ctx context.Context, name string) (*domain.CertificateType, error) {
	return &domain.CertificateType{ID: "t2", Name: name}, nil
}

func (fakeCerts) Issue(ctx context.Context, in ports.IssueCertificateInput) (*domain.Certificate, error) {
	return &domain.Certificate{ID: "c9", StudentID: in.StudentID, Status: domain.StatusPending}, nil
}

func (fakeCerts) ByID(ctx context.Context, id string) (*ports.CertificateView, error) {
	return nil, domain.ErrCertificateNotFound
}

func (fakeCerts) ByStudent(ctx context.Context, id string) ([]ports.CertificateView, error) {
	return nil, nil
}

func (fakeCerts) ByTeacher(ctx context.Context, id string) ([]ports.CertificateView, error) {
	return nil, nil
}

func (fakeCerts) StudentsByType(ctx context.Context, typeID string) ([]ports.StudentCertificate, error) {
	return nil, nil
}

func (fakeCerts) Sign(ctx context.Context, actor ports.Actor, in ports.SignCertificateInput) (*domain.Certificate, error) {
	return &domain.Certificate{ID: in.CertificateID, TeacherID: in.TeacherID, Status: domain.StatusSigned}, nil
}

func (fakeCerts) Approve(ctx context.Context, actor ports.Actor, id string) (*domain.Certificate, error) {
	return &domain.Certificate{ID: id, Status: domain.StatusApproved}, nil
}

func (fakeCerts) Verify(ctx context.Context, id string) (*ports.Verification, error) {
	return &ports.Verification{CertificateID: id, Message: "This certificate is not true."}, nil
}

// The prometheus middleware registers collectors globally, so one router is
// shared by every test in the package.
var testRouter = sync.OnceValue(func() *echo.Echo {
	return NewRouter(Deps{
		Auth:         fakeAuth{},
		Users:        fakeUsers{},
		Certificates: fakeCerts{},
		JWTSecret:    testSecret,
		Logger:       zerolog.Nop(),
		Readiness: []handler.DependencyCheck{
			{Name: "mongodb", Ping: func(context.Context) error { return nil }},
		},
	})
})

func bearer(t *testing.T, sub string, role domain.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"code": "X",
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		role   domain.Role
		want   int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"ready", http.MethodGet, "/health/ready", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"sign in", http.MethodPost, "/auth/sign-in", `{"code":"S001","password":"pw"}`, "", http.StatusOK},
		{"sign in rejected", http.MethodPost, "/auth/sign-in", `{"code":"S001","password":"bad"}`, "", http.StatusUnauthorized},
		{"verify is public", http.MethodGet, "/certificate/verify/c1", "", "", http.StatusOK},
		{"types need token", http.MethodGet, "/certificate/type/all", "", "", http.StatusUnauthorized},
		{"types", http.MethodGet, "/certificate/type/all", "", domain.RoleStudent, http.StatusOK},
		{"user by code", http.MethodGet, "/users/code/S001", "", domain.RoleStudent, http.StatusOK},
		{"user by code missing", http.MethodGet, "/users/code/S404", "", domain.RoleStudent, http.StatusNotFound},
		{"user by id", http.MethodGet, "/users/userId/u1", "", domain.RoleTeacher, http.StatusOK},
		{"update user", http.MethodPut, "/users/u1", `{"image":"x.png"}`, domain.RoleStudent, http.StatusOK},
		{"list users student", http.MethodGet, "/users/all", "", domain.RoleStudent, http.StatusForbidden},
		{"list users master", http.MethodGet, "/users/all", "", domain.RoleMaster, http.StatusOK},
		{"create user teacher", http.MethodPost, "/users", `{"code":"S2","name":"B","role":"STUDENT"}`, domain.RoleTeacher, http.StatusForbidden},
		{"create user master", http.MethodPost, "/users", `{"code":"S2","name":"B","role":"STUDENT"}`, domain.RoleMaster, http.StatusCreated},
		{"create type master", http.MethodPost, "/certificate/type/create", `{"name":"Rust"}`, domain.RoleMaster, http.StatusCreated},
		{"issue master", http.MethodPost, "/certificate/issue", `{"studentId":"s1","teacherId":"th1","certificateTypeId":"t1","score":80}`, domain.RoleMaster, http.StatusCreated},
		{"issue company", http.MethodPost, "/certificate/issue", `{"studentId":"s1","teacherId":"th1","certificateTypeId":"t1"}`, domain.RoleCompany, http.StatusForbidden},
		{"by student", http.MethodGet, "/certificate/student/s1", "", domain.RoleStudent, http.StatusOK},
		{"by teacher", http.MethodGet, "/certificate/teacher/th1", "", domain.RoleTeacher, http.StatusOK},
		{"by type", http.MethodGet, "/certificate/studentByType/t1", "", domain.RoleCompany, http.StatusOK},
		{"by id missing", http.MethodGet, "/certificate/c404", "", domain.RoleStudent, http.StatusNotFound},
		{"sign teacher", http.MethodPost, "/certificate/th1", `{"certificateId":"c1"}`, domain.RoleTeacher, http.StatusOK},
		{"sign student", http.MethodPost, "/certificate/th1", `{"certificateId":"c1"}`, domain.RoleStudent, http.StatusForbidden},
		{"approve company", http.MethodPut, "/certificate/c1/approve", "", domain.RoleCompany, http.StatusOK},
		{"approve teacher", http.MethodPut, "/certificate/c1/approve", "", domain.RoleTeacher, http.StatusForbidden},
	}

	e := testRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, "th1", tt.role))
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("%s %s: expected %d, got %d (%s)", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
