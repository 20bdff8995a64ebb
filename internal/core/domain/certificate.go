package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// CertificateStatus represents the lifecycle state of a certificate.
type CertificateStatus string

const (
	StatusPending  CertificateStatus = "PENDING"
	StatusSigned   CertificateStatus = "SIGNED"
	StatusApproved CertificateStatus = "APPROVED"
)

// Scores are percentages.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[CertificateStatus][]CertificateStatus{
	StatusPending: {StatusSigned},
	StatusSigned:  {StatusApproved},
}

var (
	ErrCertificateNotFound     = errors.New("certificate not found")
	ErrCertificateTypeNotFound = errors.New("certificate type not found")
	ErrCertificateTypeExists   = errors.New("certificate type already exists")
	ErrInvalidTransition       = errors.New("invalid status transition")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s CertificateStatus) CanTransitionTo(next CertificateStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Issued reports whether the certificate has been signed (and possibly approved).
func (s CertificateStatus) Issued() bool {
	return s == StatusSigned || s == StatusApproved
}

// CertificateType names a kind of credential, e.g. "TOEIC".
type CertificateType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NameKey is the case-insensitive uniqueness key of a type name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Certificate is a credential issued to one student for one certificate type.
type Certificate struct {
	ID                string            `json:"id"`
	StudentID         string            `json:"studentId"`
	TeacherID         string            `json:"teacherId,omitempty"`
	CertificateTypeID string            `json:"certificateTypeId"`
	Score             float64           `json:"score"`
	Status            CertificateStatus `json:"status"`
	Image             string            `json:"image,omitempty"`
	Description       string            `json:"description,omitempty"`
	CertID            string            `json:"certId,omitempty"`
	SignedBy          string            `json:"signedBy,omitempty"`
	SignedAt          time.Time         `json:"signedAt,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// Digest returns the hex SHA-256 of the signed content of c.
// The signature time is truncated to milliseconds, the precision it is stored with.
func (c *Certificate) Digest() string {
	parts := []string{
		c.ID,
		c.StudentID,
		c.CertificateTypeID,
		strconv.FormatFloat(c.Score, 'f', -1, 64),
		c.SignedBy,
		strconv.FormatInt(c.SignedAt.UnixMilli(), 10),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Authentic reports whether c is issued and its CertID still matches its content.
func (c *Certificate) Authentic() bool {
	return c.Status.Issued() && c.CertID != "" && c.CertID == c.Digest()
}

// LedgerEntry records that a signed certificate digest was anchored.
type LedgerEntry struct {
	CertificateID string    `json:"certificateId"`
	CertID        string    `json:"certId"`
	SignedBy      string    `json:"signedBy"`
	Receipt       string    `json:"receipt"`
	AnchoredAt    time.Time `json:"anchoredAt"`
}
