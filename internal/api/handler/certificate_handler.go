package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/certchain/certificate-system/internal/api/metrics"
	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

// CertificateHandler serves the /certificate routes.
type CertificateHandler struct {
	service ports.CertificateService
}

func NewCertificateHandler(service ports.CertificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// ListTypes handles GET /certificate/type/all.
//
// @Summary      List certificate types
// @Tags         certificate-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   certificateTypeResponse
// @Router       /certificate/type/all [get]
func (h *CertificateHandler) ListTypes(c echo.Context) error {
	types, err := h.service.ListTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCertificateTypeResponses(types))
}

// CreateType handles POST /certificate/type/create.
//
// @Summary      Create a certificate type
// @Tags         certificate-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCertificateTypeRequest  true  "Type name"
// @Success      201   {object}  certificateTypeResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /certificate/type/create [post]
func (h *CertificateHandler) CreateType(c echo.Context) error {
	var req createCertificateTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	t, err := h.service.CreateType(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCertificateTypeResponse(t))
}

// Issue handles POST /certificate/issue.
//
// @Summary      Issue a pending certificate to a student
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      issueCertificateRequest  true  "Certificate"
// @Success      201   {object}  certificateResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /certificate/issue [post]
func (h *CertificateHandler) Issue(c echo.Context) error {
	var req issueCertificateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cert, err := h.service.Issue(c.Request().Context(), toIssueInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCertificateResponse(cert))
}

// ByID handles GET /certificate/:id.
//
// @Summary      Get a certificate with its type
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Certificate id"
// @Success      200  {object}  certificateWithTypeResponse
// @Failure      404  {object}  errorResponse
// @Router       /certificate/{id} [get]
func (h *CertificateHandler) ByID(c echo.Context) error {
	view, err := h.service.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCertificateViewResponse(*view))
}

// ByStudent handles GET /certificate/student/:id.
//
// @Summary      List a student's certificates
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {array}   certificateWithTypeResponse
// @Router       /certificate/student/{id} [get]
func (h *CertificateHandler) ByStudent(c echo.Context) error {
	views, err := h.service.ByStudent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCertificateViewResponses(views))
}

// ByTeacher handles GET /certificate/teacher/:id.
//
// @Summary      List certificates assigned to a teacher
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Teacher id"
// @Success      200  {array}   certificateWithTypeResponse
// @Router       /certificate/teacher/{id} [get]
func (h *CertificateHandler) ByTeacher(c echo.Context) error {
	views, err := h.service.ByTeacher(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCertificateViewResponses(views))
}

// StudentsByType handles GET /certificate/studentByType/:typeId.
//
// @Summary      List students holding a certificate of a type
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Param        typeId  path      string  true  "Certificate type id"
// @Success      200     {array}   studentCertificateResponse
// @Failure      404     {object}  errorResponse
// @Router       /certificate/studentByType/{typeId} [get]
func (h *CertificateHandler) StudentsByType(c echo.Context) error {
	rows, err := h.service.StudentsByType(c.Request().Context(), c.Param("typeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStudentCertificateResponses(rows))
}

// Sign handles POST /certificate/:id where id is the signing teacher.
//
// @Summary      Sign a pending certificate
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        teacherId  path      string                  true  "Teacher id"
// @Param        body       body      signCertificateRequest  true  "Scanned certificate"
// @Success      200        {object}  certificateResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /certificate/{teacherId} [post]
func (h *CertificateHandler) Sign(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req signCertificateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cert, err := h.service.Sign(c.Request().Context(), actor, ports.SignCertificateInput{
		TeacherID:     c.Param("id"),
		Code:          req.Code,
		Subject:       req.Subject,
		CertificateID: req.CertificateID,
	})
	if err != nil {
		return err
	}

	metrics.CertificatesTransitionedTotal.WithLabelValues(string(domain.StatusSigned)).Inc()
	return c.JSON(http.StatusOK, toCertificateResponse(cert))
}

// Approve handles PUT /certificate/:id/approve.
//
// @Summary      Approve a signed certificate
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Certificate id"
// @Success      200  {object}  certificateResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /certificate/{id}/approve [put]
func (h *CertificateHandler) Approve(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	cert, err := h.service.Approve(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CertificatesTransitionedTotal.WithLabelValues(string(domain.StatusApproved)).Inc()
	return c.JSON(http.StatusOK, toCertificateResponse(cert))
}

// Verify handles GET /certificate/verify/:id. It is public so that anyone
// holding a scanned id can check it.
//
// @Summary      Verify a certificate
// @Tags         certificates
// @Produce      json
// @Param        id   path      string  true  "Certificate id"
// @Success      200  {object}  verificationResponse
// @Router       /certificate/verify/{id} [get]
func (h *CertificateHandler) Verify(c echo.Context) error {
	v, err := h.service.Verify(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	result := "not_legit"
	if v.Valid {
		result = "legit"
	}
	metrics.VerificationsTotal.WithLabelValues(result).Inc()
	return c.JSON(http.StatusOK, toVerificationResponse(v))
}
