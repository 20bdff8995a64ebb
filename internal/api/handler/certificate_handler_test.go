package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

type stubCertificateService struct {
	listTypesFn      func(ctx context.Context) ([]*domain.CertificateType, error)
	createTypeFn     func(ctx context.Context, name string) (*domain.CertificateType, error)
	issueFn          func(ctx context.Context, in ports.IssueCertificateInput) (*domain.Certificate, error)
	byIDFn           func(ctx context.Context, id string) (*ports.CertificateView, error)
	byStudentFn      func(ctx context.Context, id string) ([]ports.CertificateView, error)
	byTeacherFn      func(ctx context.Context, id string) ([]ports.CertificateView, error)
	studentsByTypeFn func(ctx context.Context, typeID string) ([]ports.StudentCertificate, error)
	signFn           func(ctx context.Context, actor ports.Actor, in ports.SignCertificateInput) (*domain.Certificate, error)
	approveFn        func(ctx context.Context, actor ports.Actor, id string) (*domain.Certificate, error)
	verifyFn         func(ctx context.Context, id string) (*ports.Verification, error)
}

func (s *stubCertificateService) ListTypes(ctx context.Context) ([]*domain.CertificateType, error) {
	return s.listTypesFn(ctx)
}

func (s *stubCertificateService) CreateType(ctx context.Context, name string) (*domain.CertificateType, error) {
	return s.createTypeFn(ctx, name)
}

func (s *stubCertificateService) Issue(ctx context.Context, in ports.IssueCertificateInput) (*domain.Certificate, error) {
	return s.issueFn(ctx, in)
}

func (s *stubCertificateService) ByID(ctx context.Context, id string) (*ports.CertificateView, error) {
	return s.byIDFn(ctx, id)
}

func (s *stubCertificateService) ByStudent(ctx context.Context, id string) ([]ports.CertificateView, error) {
	return s.byStudentFn(ctx, id)
}

func (s *stubCertificateService) ByTeacher(ctx context.Context, id string) ([]ports.CertificateView, error) {
	return s.byTeacherFn(ctx, id)
}

func (s *stubCertificateService) StudentsByType(ctx context.Context, typeID string) ([]ports.StudentCertificate, error) {
	return s.studentsByTypeFn(ctx, typeID)
}

func (s *stubCertificateService) Sign(ctx context.Context, actor ports.Actor, in ports.SignCertificateInput) (*domain.Certificate, error) {
	return s.signFn(ctx, actor, in)
}

func (s *stubCertificateService) Approve(ctx context.Context, actor ports.Actor, id string) (*domain.Certificate, error) {
	return s.approveFn(ctx, actor, id)
}

func (s *stubCertificateService) Verify(ctx context.Context, id string) (*ports.Verification, error) {
	return s.verifyFn(ctx, id)
}

var (
	goType  = &domain.CertificateType{ID: "t1", Name: "Go"}
	pending = &domain.Certificate{ID: "c1", StudentID: "s1", TeacherID: "th1", CertificateTypeID: "t1", Score: 90, Status: domain.StatusPending}
)

func TestCertificateHandler_ByStudent_RowShape(t *testing.T) {
	stub := &stubCertificateService{
		byStudentFn: func(ctx context.Context, id string) ([]ports.CertificateView, error) {
			if id != "s1" {
				t.Fatalf("unexpected student %q", id)
			}
			return []ports.CertificateView{{Certificate: pending, CertificateType: goType}}, nil
		},
	}
	h := NewCertificateHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/certificate/student/s1", "")
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := h.ByStudent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var rows []map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["certificate"]["status"] != "PENDING" || rows[0]["certificateType"]["name"] != "Go" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if _, ok := rows[0]["certificate"]["signedAt"]; ok {
		t.Fatalf("unsigned certificate must not carry signedAt")
	}
}

func TestCertificateHandler_ByTeacher_Empty(t *testing.T) {
	stub := &stubCertificateService{
		byTeacherFn: func(ctx context.Context, id string) ([]ports.CertificateView, error) {
			return nil, nil
		},
	}
	h := NewCertificateHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/certificate/teacher/th1", "")
	c.SetParamNames("id")
	c.SetParamValues("th1")
	if err := h.ByTeacher(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestCertificateHandler_CreateType(t *testing.T) {
	stub := &stubCertificateService{
		createTypeFn: func(ctx context.Context, name string) (*domain.CertificateType, error) {
			if name != "Go" {
				t.Fatalf("unexpected name %q", name)
			}
			return goType, nil
		},
	}
	h := NewCertificateHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/certificate/type/create", `{"name":"Go"}`)
	if err := h.CreateType(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCertificateHandler_Issue_ValidatesScore(t *testing.T) {
	h := NewCertificateHandler(&stubCertificateService{})

	c, _ := newTestContext(http.MethodPost, "/certificate/issue", `{"studentId":"s1","teacherId":"th1","certificateTypeId":"t1","score":120}`)
	if got := httpCode(t, h.Issue(c)); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", got)
	}
}

func TestCertificateHandler_Sign(t *testing.T) {
	signedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubCertificateService{
		signFn: func(ctx context.Context, actor ports.Actor, in ports.SignCertificateInput) (*domain.Certificate, error) {
			if actor.UserID != "th1" || actor.Role != domain.RoleTeacher {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if in.TeacherID != "th1" || in.CertificateID != "c1" || in.Code != "T001" || in.Subject != "Go" {
				t.Fatalf("unexpected input: %+v", in)
			}
			signed := *pending
			signed.Status = domain.StatusSigned
			signed.SignedBy = "T001"
			signed.SignedAt = signedAt
			signed.CertID = "abc"
			return &signed, nil
		},
	}
	h := NewCertificateHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/certificate/th1", `{"code":"T001","subject":"Go","certificateId":"c1"}`)
	c.SetParamNames("id")
	c.SetParamValues("th1")
	c.Set("user_id", "th1")
	c.Set("code", "T001")
	c.Set("role", "TEACHER")

	if err := h.Sign(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp certificateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "SIGNED" || resp.CertID != "abc" || resp.SignedAt == nil || !resp.SignedAt.Equal(signedAt) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCertificateHandler_Sign_Forbidden(t *testing.T) {
	stub := &stubCertificateService{
		signFn: func(ctx context.Context, actor ports.Actor, in ports.SignCertificateInput) (*domain.Certificate, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewCertificateHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/certificate/th2", `{"certificateId":"c1"}`)
	c.SetParamNames("id")
	c.SetParamValues("th2")
	c.Set("user_id", "th1")
	c.Set("role", "TEACHER")

	if err := h.Sign(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCertificateHandler_Approve_InvalidTransition(t *testing.T) {
	stub := &stubCertificateService{
		approveFn: func(ctx context.Context, actor ports.Actor, id string) (*domain.Certificate, error) {
			if actor.Role != domain.RoleCompany || id != "c1" {
				t.Fatalf("unexpected call: %+v %s", actor, id)
			}
			return nil, domain.ErrInvalidTransition
		},
	}
	h := NewCertificateHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/certificate/c1/approve", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "co1")
	c.Set("role", "COMPANY")

	if err := h.Approve(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCertificateHandler_Verify(t *testing.T) {
	stub := &stubCertificateService{
		verifyFn: func(ctx context.Context, id string) (*ports.Verification, error) {
			return &ports.Verification{CertificateID: id, Valid: true, Message: "This certificate is legit."}, nil
		},
	}
	h := NewCertificateHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/certificate/verify/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp verificationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp != (verificationResponse{CertificateID: "c1", Valid: true, Message: "This certificate is legit."}) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCertificateHandler_StudentsByType(t *testing.T) {
	stub := &stubCertificateService{
		studentsByTypeFn: func(ctx context.Context, typeID string) ([]ports.StudentCertificate, error) {
			if typeID != "t1" {
				t.Fatalf("unexpected type %q", typeID)
			}
			return []ports.StudentCertificate{{
				Student:     &domain.User{ID: "s1", Code: "S001", Role: domain.RoleStudent},
				Certificate: pending,
			}}, nil
		},
	}
	h := NewCertificateHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/certificate/studentByType/t1", "")
	c.SetParamNames("typeId")
	c.SetParamValues("t1")
	if err := h.StudentsByType(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var rows []studentCertificateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 1 || rows[0].Student.Code != "S001" || rows[0].Certificate.ID != "c1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
