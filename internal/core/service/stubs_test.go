package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Code == user.Code {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.byID[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Code == code {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if role == "" || u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	patch.Apply(u)
	return cloneUser(u), nil
}

type stubTypeRepo struct {
	byID map[string]*domain.CertificateType
}

func newStubTypeRepo() *stubTypeRepo {
	return &stubTypeRepo{byID: make(map[string]*domain.CertificateType)}
}

func (r *stubTypeRepo) Create(_ context.Context, t *domain.CertificateType) (*domain.CertificateType, error) {
	for _, existing := range r.byID {
		if domain.NameKey(existing.Name) == domain.NameKey(t.Name) {
			return nil, domain.ErrCertificateTypeExists
		}
	}
	clone := *t
	clone.ID = fmt.Sprintf("t%d", len(r.byID)+1)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTypeRepo) FindByID(_ context.Context, id string) (*domain.CertificateType, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCertificateTypeNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTypeRepo) List(_ context.Context) ([]*domain.CertificateType, error) {
	out := make([]*domain.CertificateType, 0, len(r.byID))
	for _, t := range r.byID {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubCertRepo struct {
	byID      map[string]*domain.Certificate
	updateErr error
}

func newStubCertRepo() *stubCertRepo {
	return &stubCertRepo{byID: make(map[string]*domain.Certificate)}
}

func (r *stubCertRepo) Create(_ context.Context, c *domain.Certificate) (*domain.Certificate, error) {
	clone := *c
	clone.ID = fmt.Sprintf("c%d", len(r.byID)+1)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCertRepo) FindByID(_ context.Context, id string) (*domain.Certificate, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCertificateNotFound
	}
	clone := *c
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubCertRepo) List(_ context.Context, f ports.CertificateFilter) ([]*domain.Certificate, error) {
	var out []*domain.Certificate
	for _, c := range r.byID {
		if f.StudentID != "" && c.StudentID != f.StudentID {
			continue
		}
		if f.TeacherID != "" && c.TeacherID != f.TeacherID {
			continue
		}
		if f.CertificateTypeID != "" && c.CertificateTypeID != f.CertificateTypeID {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCertRepo) UpdateStatus(_ context.Context, c *domain.Certificate, from domain.CertificateStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.byID[c.ID]
	if !ok {
		return domain.ErrCertificateNotFound
	}
	if stored.Status != from {
		return domain.ErrInvalidTransition
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

type stubLedger struct {
	entries map[string]*domain.LedgerEntry
}

func (l *stubLedger) Append(_ context.Context, e *domain.LedgerEntry) error {
	l.entries[e.CertificateID] = e
	return nil
}

func (l *stubLedger) FindByCertificate(_ context.Context, id string) (*domain.LedgerEntry, error) {
	e, ok := l.entries[id]
	if !ok {
		return nil, domain.ErrCertificateNotFound
	}
	return e, nil
}

type stubCache struct {
	mu          sync.Mutex
	items       map[string]*ports.Verification
	hits        int
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{items: make(map[string]*ports.Verification)}
}

func (c *stubCache) Get(_ context.Context, id string) (*ports.Verification, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[id]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *stubCache) Set(_ context.Context, v *ports.Verification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[v.CertificateID] = v
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type stubAnchorer struct {
	jobs []ports.AnchorJob
}

func (a *stubAnchorer) Enqueue(job ports.AnchorJob) {
	a.jobs = append(a.jobs, job)
}
