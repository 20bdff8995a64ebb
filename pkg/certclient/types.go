package certclient

import "time"

// Roles as reported by the API.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleMaster  = "MASTER"
	RoleCompany = "COMPANY"
)

// Certificate statuses as reported by the API.
const (
	StatusPending  = "PENDING"
	StatusSigned   = "SIGNED"
	StatusApproved = "APPROVED"
)

type User struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Image         string    `json:"image,omitempty"`
	DateOfBirth   string    `json:"dateOfBirth,omitempty"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CertificateType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Certificate struct {
	ID                string     `json:"id"`
	StudentID         string     `json:"studentId"`
	TeacherID         string     `json:"teacherId,omitempty"`
	CertificateTypeID string     `json:"certificateTypeId"`
	Score             float64    `json:"score"`
	Status            string     `json:"status"`
	Image             string     `json:"image,omitempty"`
	Description       string     `json:"description,omitempty"`
	CertID            string     `json:"certId,omitempty"`
	SignedBy          string     `json:"signedBy,omitempty"`
	SignedAt          *time.Time `json:"signedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// CertificateWithType is one row of the student and teacher listings.
type CertificateWithType struct {
	Certificate     Certificate     `json:"certificate"`
	CertificateType CertificateType `json:"certificateType"`
}

// StudentCertificate is one row of the students-by-type listing.
type StudentCertificate struct {
	Student     User        `json:"student"`
	Certificate Certificate `json:"certificate"`
}

type Verification struct {
	CertificateID string `json:"certificateId"`
	Valid         bool   `json:"valid"`
	Message       string `json:"message"`
}

type SignInResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateUserRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Password    string `json:"password,omitempty"`
	Image       string `json:"image,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// UpdateUserRequest is a partial update; nil fields are not sent.
type UpdateUserRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Image       *string `json:"image,omitempty"`
	Password    *string `json:"password,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Role        *string `json:"role,omitempty"`
}

type IssueCertificateRequest struct {
	StudentID         string  `json:"studentId"`
	TeacherID         string  `json:"teacherId"`
	CertificateTypeID string  `json:"certificateTypeId"`
	Score             float64 `json:"score"`
	Image             string  `json:"image,omitempty"`
	Description       string  `json:"description,omitempty"`
}

// SignCertificateRequest is the payload a teacher sends after scanning a certificate.
type SignCertificateRequest struct {
	Code          string `json:"code"`
	Subject       string `json:"subject,omitempty"`
	CertificateID string `json:"certificateId"`
}
