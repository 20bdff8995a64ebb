package handler

import (
	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Code:        req.Code,
		Name:        req.Name,
		Role:        domain.Role(req.Role),
		Password:    req.Password,
		Image:       req.Image,
		DateOfBirth: req.DateOfBirth,
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	in := ports.UpdateUserInput{
		Code:        req.Code,
		Name:        req.Name,
		Image:       req.Image,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	return in
}

func toIssueInput(req issueCertificateRequest) ports.IssueCertificateInput {
	return ports.IssueCertificateInput{
		StudentID:         req.StudentID,
		TeacherID:         req.TeacherID,
		CertificateTypeID: req.CertificateTypeID,
		Score:             req.Score,
		Image:             req.Image,
		Description:       req.Description,
	}
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Code:          u.Code,
		Name:          u.Name,
		Role:          string(u.Role),
		Image:         u.Image,
		DateOfBirth:   u.DateOfBirth,
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt.UTC(),
		UpdatedAt:     u.UpdatedAt.UTC(),
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toCertificateTypeResponse(t *domain.CertificateType) certificateTypeResponse {
	if t == nil {
		return certificateTypeResponse{}
	}
	return certificateTypeResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func toCertificateTypeResponses(types []*domain.CertificateType) []certificateTypeResponse {
	out := make([]certificateTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, toCertificateTypeResponse(t))
	}
	return out
}

func toCertificateResponse(c *domain.Certificate) certificateResponse {
	resp := certificateResponse{
		ID:                c.ID,
		StudentID:         c.StudentID,
		TeacherID:         c.TeacherID,
		CertificateTypeID: c.CertificateTypeID,
		Score:             c.Score,
		Status:            string(c.Status),
		Image:             c.Image,
		Description:       c.Description,
		CertID:            c.CertID,
		SignedBy:          c.SignedBy,
		CreatedAt:         c.CreatedAt.UTC(),
		UpdatedAt:         c.UpdatedAt.UTC(),
	}
	if !c.SignedAt.IsZero() {
		signedAt := c.SignedAt.UTC()
		resp.SignedAt = &signedAt
	}
	return resp
}

func toCertificateViewResponse(v ports.CertificateView) certificateWithTypeResponse {
	return certificateWithTypeResponse{
		Certificate:     toCertificateResponse(v.Certificate),
		CertificateType: toCertificateTypeResponse(v.CertificateType),
	}
}

func toCertificateViewResponses(views []ports.CertificateView) []certificateWithTypeResponse {
	out := make([]certificateWithTypeResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toCertificateViewResponse(v))
	}
	return out
}

func toStudentCertificateResponses(rows []ports.StudentCertificate) []studentCertificateResponse {
	out := make([]studentCertificateResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, studentCertificateResponse{
			Student:     toUserResponse(r.Student),
			Certificate: toCertificateResponse(r.Certificate),
		})
	}
	return out
}

func toVerificationResponse(v *ports.Verification) verificationResponse {
	return verificationResponse{
		CertificateID: v.CertificateID,
		Valid:         v.Valid,
		Message:       v.Message,
	}
}
