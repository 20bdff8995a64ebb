package ports

import (
	"context"

	"github.com/certchain/certificate-system/internal/core/domain"
)

// IssueCertificateInput creates a pending certificate for a student.
type IssueCertificateInput struct {
	StudentID         string
	TeacherID         string
	CertificateTypeID string
	Score             float64
	Image             string
	Description       string
}

// SignCertificateInput is what a teacher submits after scanning a certificate.
type SignCertificateInput struct {
	TeacherID     string
	Code          string
	Subject       string
	CertificateID string
}

// CertificateView is a certificate joined with its type.
type CertificateView struct {
	Certificate     *domain.Certificate
	CertificateType *domain.CertificateType
}

// StudentCertificate is a student joined with the certificate they hold of a type.
type StudentCertificate struct {
	Student     *domain.User
	Certificate *domain.Certificate
}

// Verification is the outcome of checking a certificate.
type Verification struct {
	CertificateID string
	Valid         bool
	Message       string
}

// CertificateService defines use-case operations for certificates and their types.
type CertificateService interface {
	ListTypes(ctx context.Context) ([]*domain.CertificateType, error)
	CreateType(ctx context.Context, name string) (*domain.CertificateType, error)
	Issue(ctx context.Context, input IssueCertificateInput) (*domain.Certificate, error)
	ByID(ctx context.Context, id string) (*CertificateView, error)
	ByStudent(ctx context.Context, studentID string) ([]CertificateView, error)
	ByTeacher(ctx context.Context, teacherID string) ([]CertificateView, error)
	StudentsByType(ctx context.Context, typeID string) ([]StudentCertificate, error)
	Sign(ctx context.Context, actor Actor, input SignCertificateInput) (*domain.Certificate, error)
	Approve(ctx context.Context, actor Actor, id string) (*domain.Certificate, error)
	Verify(ctx context.Context, id string) (*Verification, error)
}

// Anchorer records signed certificates asynchronously.
type Anchorer interface {
	Enqueue(job AnchorJob)
}

// AnchorJob is a signed certificate waiting to be written to the ledger.
type AnchorJob struct {
	CertificateID string
	CertID        string
	SignedBy      string
}

// VerificationCache keeps recent verification results.
type VerificationCache interface {
	Get(ctx context.Context, certificateID string) (*Verification, bool, error)
	Set(ctx context.Context, v *Verification) error
	Invalidate(ctx context.Context, certificateID string) error
}
