package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Requests ---

type signInRequest struct {
	Code     string `json:"code"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Code        string `json:"code"        validate:"required"`
	Name        string `json:"name"        validate:"required"`
	Role        string `json:"role"        validate:"required,oneof=STUDENT TEACHER MASTER COMPANY"`
	Password    string `json:"password"    validate:"omitempty,min=4"`
	Image       string `json:"image"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

type updateUserRequest struct {
	Code        *string `json:"code"        validate:"omitnil,min=1"`
	Name        *string `json:"name"        validate:"omitnil,min=1"`
	Image       *string `json:"image"`
	Password    *string `json:"password"    validate:"omitempty,min=4"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Role        *string `json:"role"        validate:"omitempty,oneof=STUDENT TEACHER MASTER COMPANY"`
}

type createCertificateTypeRequest struct {
	Name string `json:"name" validate:"required"`
}

type issueCertificateRequest struct {
	StudentID         string  `json:"studentId"         validate:"required"`
	TeacherID         string  `json:"teacherId"         validate:"required"`
	CertificateTypeID string  `json:"certificateTypeId" validate:"required"`
	Score             float64 `json:"score"             validate:"gte=0,lte=100"`
	Image             string  `json:"image"`
	Description       string  `json:"description"`
}

type signCertificateRequest struct {
	Code          string `json:"code"`
	Subject       string `json:"subject"`
	CertificateID string `json:"certificateId" validate:"required"`
}

// --- Responses ---

type userResponse struct {
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

type signInResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type certificateTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type certificateResponse struct {
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

type certificateWithTypeResponse struct {
	Certificate     certificateResponse     `json:"certificate"`
	CertificateType certificateTypeResponse `json:"certificateType"`
}

type studentCertificateResponse struct {
	Student     userResponse        `json:"student"`
	Certificate certificateResponse `json:"certificate"`
}

type verificationResponse struct {
	CertificateID string `json:"certificateId"`
	Valid         bool   `json:"valid"`
	Message       string `json:"message"`
}
