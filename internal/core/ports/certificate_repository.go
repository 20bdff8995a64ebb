package ports

import (
	"context"

	"github.com/certchain/certificate-system/internal/core/domain"
)

// CertificateFilter selects certificates. Empty fields do not filter.
type CertificateFilter struct {
	StudentID         string
	TeacherID         string
	CertificateTypeID string
}

// CertificateTypeRepository defines persistence operations for certificate types.
type CertificateTypeRepository interface {
	Create(ctx context.Context, t *domain.CertificateType) (*domain.CertificateType, error)
	FindByID(ctx context.Context, id string) (*domain.CertificateType, error)
	List(ctx context.Context) ([]*domain.CertificateType, error)
}

// CertificateRepository defines persistence operations for certificates.
type CertificateRepository interface {
	Create(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error)
	FindByID(ctx context.Context, id string) (*domain.Certificate, error)
	List(ctx context.Context, filter CertificateFilter) ([]*domain.Certificate, error)
	// UpdateStatus moves the certificate from one status to another. It returns
	// domain.ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, c *domain.Certificate, from domain.CertificateStatus) error
}

// LedgerRepository stores anchored certificate digests.
type LedgerRepository interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	FindByCertificate(ctx context.Context, certificateID string) (*domain.LedgerEntry, error)
}
