package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

const (
	msgLegit    = "This certificate is legit."
	msgNotLegit = "This certificate is not true."
)

// CertificateDeps groups the collaborators of the certificate service.
// Ledger, Cache and Anchorer are optional.
type CertificateDeps struct {
	Certificates ports.CertificateRepository
	Types        ports.CertificateTypeRepository
	Users        ports.UserRepository
	Ledger       ports.LedgerRepository
	Cache        ports.VerificationCache
	Anchorer     ports.Anchorer
}

type certificateService struct {
	certs    ports.CertificateRepository
	types    ports.CertificateTypeRepository
	users    ports.UserRepository
	ledger   ports.LedgerRepository
	cache    ports.VerificationCache
	anchorer ports.Anchorer
	log      zerolog.Logger
	now      func() time.Time
}

// NewCertificateService returns a CertificateService implementation.
func NewCertificateService(deps CertificateDeps, log zerolog.Logger) ports.CertificateService {
	return &certificateService{
		certs:    deps.Certificates,
		types:    deps.Types,
		users:    deps.Users,
		ledger:   deps.Ledger,
		cache:    deps.Cache,
		anchorer: deps.Anchorer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *certificateService) ListTypes(ctx context.Context) ([]*domain.CertificateType, error) {
	return s.types.List(ctx)
}

func (s *certificateService) CreateType(ctx context.Context, name string) (*domain.CertificateType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create certificate type: %w: name is required", domain.ErrInvalidInput)
	}

	now := s.now()
	created, err := s.types.Create(ctx, &domain.CertificateType{Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("type_id", created.ID).Str("name", created.Name).Msg("certificate type created")
	return created, nil
}

// Issue creates a PENDING certificate assigned to a teacher for signing.
func (s *certificateService) Issue(ctx context.Context, in ports.IssueCertificateInput) (*domain.Certificate, error) {
	if in.Score < domain.MinScore || in.Score > domain.MaxScore {
		return nil, fmt.Errorf("issue certificate: %w: score must be between %g and %g", domain.ErrInvalidInput, domain.MinScore, domain.MaxScore)
	}
	if err := s.requireRole(ctx, in.StudentID, domain.RoleStudent); err != nil {
		return nil, fmt.Errorf("issue certificate: student: %w", err)
	}
	if err := s.requireRole(ctx, in.TeacherID, domain.RoleTeacher); err != nil {
		return nil, fmt.Errorf("issue certificate: teacher: %w", err)
	}
	if _, err := s.types.FindByID(ctx, in.CertificateTypeID); err != nil {
		return nil, fmt.Errorf("issue certificate: %w", err)
	}

	now := s.now()
	cert, err := s.certs.Create(ctx, &domain.Certificate{
		StudentID:         in.StudentID,
		TeacherID:         in.TeacherID,
		CertificateTypeID: in.CertificateTypeID,
		Score:             in.Score,
		Status:            domain.StatusPending,
		Image:             in.Image,
		Description:       in.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("certificate_id", cert.ID).Str("student_id", in.StudentID).Msg("certificate issued")
	return cert, nil
}

func (s *certificateService) requireRole(ctx context.Context, userID string, role domain.Role) error {
	if userID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role != role {
		return fmt.Errorf("%w: user %s is not a %s", domain.ErrInvalidInput, u.Code, role)
	}
	return nil
}

func (s *certificateService) ByID(ctx context.Context, id string) (*ports.CertificateView, error) {
	cert, err := s.certs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.join(ctx, []*domain.Certificate{cert})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *certificateService) ByStudent(ctx context.Context, studentID string) ([]ports.CertificateView, error) {
	certs, err := s.certs.List(ctx, ports.CertificateFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	return s.join(ctx, certs)
}

func (s *certificateService) ByTeacher(ctx context.Context, teacherID string) ([]ports.CertificateView, error) {
	certs, err := s.certs.List(ctx, ports.CertificateFilter{TeacherID: teacherID})
	if err != nil {
		return nil, err
	}
	return s.join(ctx, certs)
}

// join attaches each certificate's type, loading every type at most once.
func (s *certificateService) join(ctx context.Context, certs []*domain.Certificate) ([]ports.CertificateView, error) {
	types := make(map[string]*domain.CertificateType)
	views := make([]ports.CertificateView, 0, len(certs))
	for _, c := range certs {
		t, ok := types[c.CertificateTypeID]
		if !ok {
			var err error
			t, err = s.types.FindByID(ctx, c.CertificateTypeID)
			if err != nil && !errors.Is(err, domain.ErrCertificateTypeNotFound) {
				return nil, err
			}
			types[c.CertificateTypeID] = t
		}
		views = append(views, ports.CertificateView{Certificate: c, CertificateType: t})
	}
	return views, nil
}

func (s *certificateService) StudentsByType(ctx context.Context, typeID string) ([]ports.StudentCertificate, error) {
	if _, err := s.types.FindByID(ctx, typeID); err != nil {
		return nil, err
	}

	certs, err := s.certs.List(ctx, ports.CertificateFilter{CertificateTypeID: typeID})
	if err != nil {
		return nil, err
	}

	out := make([]ports.StudentCertificate, 0, len(certs))
	for _, c := range certs {
		student, err := s.users.FindByID(ctx, c.StudentID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				s.log.Warn().Str("certificate_id", c.ID).Str("student_id", c.StudentID).Msg("certificate references missing student")
				continue
			}
			return nil, err
		}
		out = append(out, ports.StudentCertificate{Student: student, Certificate: c})
	}
	return out, nil
}

// Sign moves a PENDING certificate to SIGNED on behalf of its teacher and
// queues the resulting digest for ledger anchoring.
func (s *certificateService) Sign(ctx context.Context, actor ports.Actor, in ports.SignCertificateInput) (*domain.Certificate, error) {
	if actor.Role != domain.RoleTeacher || actor.UserID != in.TeacherID {
		return nil, domain.ErrForbidden
	}
	if in.Code != "" && in.Code != actor.Code {
		return nil, domain.ErrForbidden
	}

	cert, err := s.certs.FindByID(ctx, in.CertificateID)
	if err != nil {
		return nil, fmt.Errorf("sign certificate: %w", err)
	}
	if cert.TeacherID != "" && cert.TeacherID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !cert.Status.CanTransitionTo(domain.StatusSigned) {
		return nil, fmt.Errorf("sign certificate: %w (from %s to %s)", domain.ErrInvalidTransition, cert.Status, domain.StatusSigned)
	}

	now := s.now().Truncate(time.Millisecond)
	from := cert.Status
	cert.TeacherID = actor.UserID
	cert.SignedBy = actor.Code
	cert.SignedAt = now
	cert.Status = domain.StatusSigned
	cert.UpdatedAt = now
	cert.CertID = cert.Digest()

	if err := s.certs.UpdateStatus(ctx, cert, from); err != nil {
		return nil, fmt.Errorf("sign certificate: %w", err)
	}

	s.invalidate(ctx, cert.ID)
	if s.anchorer != nil {
		s.anchorer.Enqueue(ports.AnchorJob{CertificateID: cert.ID, CertID: cert.CertID, SignedBy: cert.SignedBy})
	}

	s.log.Info().
		Str("certificate_id", cert.ID).
		Str("teacher", actor.Code).
		Str("subject", in.Subject).
		Msg("certificate signed")

	return cert, nil
}

func (s *certificateService) Approve(ctx context.Context, actor ports.Actor, id string) (*domain.Certificate, error) {
	if actor.Role != domain.RoleCompany && actor.Role != domain.RoleMaster {
		return nil, domain.ErrForbidden
	}

	cert, err := s.certs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approve certificate: %w", err)
	}
	if !cert.Status.CanTransitionTo(domain.StatusApproved) {
		return nil, fmt.Errorf("approve certificate: %w (from %s to %s)", domain.ErrInvalidTransition, cert.Status, domain.StatusApproved)
	}

	from := cert.Status
	cert.Status = domain.StatusApproved
	cert.UpdatedAt = s.now()
	if err := s.certs.UpdateStatus(ctx, cert, from); err != nil {
		return nil, fmt.Errorf("approve certificate: %w", err)
	}

	s.invalidate(ctx, cert.ID)
	s.log.Info().Str("certificate_id", cert.ID).Str("by", actor.Code).Msg("certificate approved")
	return cert, nil
}

// Verify reports whether a certificate is issued and untampered. An unknown
// id is a negative verification, not an error.
func (s *certificateService) Verify(ctx context.Context, id string) (*ports.Verification, error) {
	if s.cache != nil {
		v, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("certificate_id", id).Msg("verification cache read failed")
		} else if ok {
			return v, nil
		}
	}

	v := &ports.Verification{CertificateID: id, Message: msgNotLegit}

	cert, err := s.certs.FindByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrCertificateNotFound):
	case err != nil:
		return nil, fmt.Errorf("verify certificate: %w", err)
	default:
		v.Valid = cert.Authentic() && s.anchored(ctx, cert)
	}
	if v.Valid {
		v.Message = msgLegit
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, v); err != nil {
			s.log.Warn().Err(err).Str("certificate_id", id).Msg("verification cache write failed")
		}
	}
	return v, nil
}

// anchored cross-checks the ledger. A missing entry is accepted because
// anchoring runs after the sign request returns.
func (s *certificateService) anchored(ctx context.Context, cert *domain.Certificate) bool {
	if s.ledger == nil {
		return true
	}
	entry, err := s.ledger.FindByCertificate(ctx, cert.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrCertificateNotFound) {
			s.log.Warn().Err(err).Str("certificate_id", cert.ID).Msg("ledger lookup failed")
		}
		return true
	}
	return entry.CertID == cert.CertID
}

func (s *certificateService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("certificate_id", id).Msg("verification cache invalidate failed")
	}
}
