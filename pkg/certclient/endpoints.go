package certclient

import "context"

// SignIn verifies credentials. The returned token is not stored on c; use
// Authorize to obtain a client that sends it.
func (c *Client) SignIn(ctx context.Context, code, password string) (*SignInResult, error) {
	in := struct {
		Code     string `json:"code"`
		Password string `json:"password"`
	}{Code: code, Password: password}

	var out SignInResult
	if err := c.post(ctx, "/auth/sign-in", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserByCode(ctx context.Context, code string) (*User, error) {
	var out User
	if err := c.get(ctx, "/users/code/"+escape(code), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	var out User
	if err := c.get(ctx, "/users/userId/"+escape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users lists every account. Requires a MASTER token.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.get(ctx, "/users/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := c.post(ctx, "/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var out User
	if err := c.put(ctx, "/users/"+escape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CertificateTypes(ctx context.Context) ([]CertificateType, error) {
	var out []CertificateType
	if err := c.get(ctx, "/certificate/type/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCertificateType(ctx context.Context, name string) (*CertificateType, error) {
	in := struct {
		Name string `json:"name"`
	}{Name: name}

	var out CertificateType
	if err := c.post(ctx, "/certificate/type/create", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CertificatesByStudent(ctx context.Context, studentID string) ([]CertificateWithType, error) {
	var out []CertificateWithType
	if err := c.get(ctx, "/certificate/student/"+escape(studentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CertificatesByTeacher(ctx context.Context, teacherID string) ([]CertificateWithType, error) {
	var out []CertificateWithType
	if err := c.get(ctx, "/certificate/teacher/"+escape(teacherID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StudentsByType(ctx context.Context, typeID string) ([]StudentCertificate, error) {
	var out []StudentCertificate
	if err := c.get(ctx, "/certificate/studentByType/"+escape(typeID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Certificate(ctx context.Context, id string) (*CertificateWithType, error) {
	var out CertificateWithType
	if err := c.get(ctx, "/certificate/"+escape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssueCertificate creates a pending certificate. Requires a MASTER token.
func (c *Client) IssueCertificate(ctx context.Context, req IssueCertificateRequest) (*Certificate, error) {
	var out Certificate
	if err := c.post(ctx, "/certificate/issue", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignCertificate signs a pending certificate on behalf of teacherID.
func (c *Client) SignCertificate(ctx context.Context, teacherID string, req SignCertificateRequest) (*Certificate, error) {
	var out Certificate
	if err := c.post(ctx, "/certificate/"+escape(teacherID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApproveCertificate(ctx context.Context, id string) (*Certificate, error) {
	var out Certificate
	if err := c.put(ctx, "/certificate/"+escape(id)+"/approve", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCertificate needs no token.
func (c *Client) VerifyCertificate(ctx context.Context, id string) (*Verification, error) {
	var out Verification
	if err := c.get(ctx, "/certificate/verify/"+escape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
