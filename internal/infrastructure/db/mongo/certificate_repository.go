package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Certificate types
// ---------------------------------------------------------------------------

type CertificateTypeRepository struct {
	col *mongo.Collection
}

func NewCertificateTypeRepository(db *mongo.Database) *CertificateTypeRepository {
	return &CertificateTypeRepository{col: db.Collection(collectionCertificateTypes)}
}

type mongoCertificateType struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	NameKey   string             `bson:"name_key"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (m *mongoCertificateType) toDomain() *domain.CertificateType {
	return &domain.CertificateType{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		CreatedAt: unixMilliToTime(m.CreatedAt),
		UpdatedAt: unixMilliToTime(m.UpdatedAt),
	}
}

func (r *CertificateTypeRepository) Create(ctx context.Context, t *domain.CertificateType) (*domain.CertificateType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCertificateType{
		Name:      t.Name,
		NameKey:   domain.NameKey(t.Name),
		CreatedAt: timeToUnixMilli(t.CreatedAt),
		UpdatedAt: timeToUnixMilli(t.UpdatedAt),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCertificateTypeExists
		}
		return nil, fmt.Errorf("insert certificate type: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *CertificateTypeRepository) FindByID(ctx context.Context, id string) (*domain.CertificateType, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCertificateTypeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCertificateType
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCertificateTypeNotFound
		}
		return nil, fmt.Errorf("find certificate type: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CertificateTypeRepository) List(ctx context.Context) ([]*domain.CertificateType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list certificate types: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCertificateType
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode certificate types: %w", err)
	}

	out := make([]*domain.CertificateType, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Certificates
// ---------------------------------------------------------------------------

type CertificateRepository struct {
	col *mongo.Collection
}

func NewCertificateRepository(db *mongo.Database) *CertificateRepository {
	return &CertificateRepository{col: db.Collection(collectionCertificates)}
}

type mongoCertificate struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	StudentID         string             `bson:"student_id"`
	TeacherID         string             `bson:"teacher_id,omitempty"`
	CertificateTypeID string             `bson:"certificate_type_id"`
	Score             float64            `bson:"score"`
	Status            string             `bson:"status"`
	Image             string             `bson:"image,omitempty"`
	Description       string             `bson:"description,omitempty"`
	CertID            string             `bson:"cert_id,omitempty"`
	SignedBy          string             `bson:"signed_by,omitempty"`
	SignedAt          int64              `bson:"signed_at,omitempty"`
	CreatedAt         int64              `bson:"created_at"`
	UpdatedAt         int64              `bson:"updated_at"`
}

func (m *mongoCertificate) toDomain() *domain.Certificate {
	return &domain.Certificate{
		ID:                m.ID.Hex(),
		StudentID:         m.StudentID,
		TeacherID:         m.TeacherID,
		CertificateTypeID: m.CertificateTypeID,
		Score:             m.Score,
		Status:            domain.CertificateStatus(m.Status),
		Image:             m.Image,
		Description:       m.Description,
		CertID:            m.CertID,
		SignedBy:          m.SignedBy,
		SignedAt:          unixMilliToTime(m.SignedAt),
		CreatedAt:         unixMilliToTime(m.CreatedAt),
		UpdatedAt:         unixMilliToTime(m.UpdatedAt),
	}
}

// Create inserts a new certificate document.
func (r *CertificateRepository) Create(ctx context.Context, c *domain.Certificate) (*domain.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCertificate{
		StudentID:         c.StudentID,
		TeacherID:         c.TeacherID,
		CertificateTypeID: c.CertificateTypeID,
		Score:             c.Score,
		Status:            string(c.Status),
		Image:             c.Image,
		Description:       c.Description,
		CreatedAt:         timeToUnixMilli(c.CreatedAt),
		UpdatedAt:         timeToUnixMilli(c.UpdatedAt),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert certificate: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*domain.Certificate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCertificateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCertificate
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("find certificate: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns certificates matching filter, newest first.
func (r *CertificateRepository) List(ctx context.Context, f ports.CertificateFilter) ([]*domain.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.StudentID != "" {
		filter["student_id"] = f.StudentID
	}
	if f.TeacherID != "" {
		filter["teacher_id"] = f.TeacherID
	}
	if f.CertificateTypeID != "" {
		filter["certificate_type_id"] = f.CertificateTypeID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCertificate
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode certificates: %w", err)
	}

	out := make([]*domain.Certificate, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// UpdateStatus writes the new status and signature fields only while the
// stored status still equals from, so two concurrent signers cannot both win.
func (r *CertificateRepository) UpdateStatus(ctx context.Context, c *domain.Certificate, from domain.CertificateStatus) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrCertificateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(from)}
	update := bson.M{"$set": bson.M{
		"status":     string(c.Status),
		"teacher_id": c.TeacherID,
		"cert_id":    c.CertID,
		"signed_by":  c.SignedBy,
		"signed_at":  timeToUnixMilli(c.SignedAt),
		"updated_at": timeToUnixMilli(c.UpdatedAt),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update certificate status: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("update certificate status: %w", err)
		}
		if n == 0 {
			return domain.ErrCertificateNotFound
		}
		return domain.ErrInvalidTransition
	}
	return nil
}
