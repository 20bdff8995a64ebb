package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/certchain/certificate-system/internal/core/domain"
)

// LedgerRepository persists anchored certificate digests to certificate_ledger.
type LedgerRepository struct {
	db *mongo.Database
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// mongoLedgerEntry is the stored form of a ledger entry. Times are unix millis.
type mongoLedgerEntry struct {
	CertificateID string `bson:"certificate_id"`
	CertID        string `bson:"cert_id"`
	SignedBy      string `bson:"signed_by"`
	Receipt       string `bson:"receipt"`
	AnchoredAt    int64  `bson:"anchored_at"`
	RecordedAt    int64  `bson:"recorded_at"`
}

func newMongoLedgerEntry(e *domain.LedgerEntry, recordedAt time.Time) mongoLedgerEntry {
	return mongoLedgerEntry{
		CertificateID: e.CertificateID,
		CertID:        e.CertID,
		SignedBy:      e.SignedBy,
		Receipt:       e.Receipt,
		AnchoredAt:    timeToUnixMilli(e.AnchoredAt),
		RecordedAt:    timeToUnixMilli(recordedAt),
	}
}

func (m *mongoLedgerEntry) toDomain() *domain.LedgerEntry {
	return &domain.LedgerEntry{
		CertificateID: m.CertificateID,
		CertID:        m.CertID,
		SignedBy:      m.SignedBy,
		Receipt:       m.Receipt,
		AnchoredAt:    unixMilliToTime(m.AnchoredAt),
	}
}

func (r *LedgerRepository) Append(ctx context.Context, e *domain.LedgerEntry) error {
	_, err := r.db.Collection(collectionLedger).InsertOne(ctx, newMongoLedgerEntry(e, time.Now()))
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// FindByCertificate returns the most recent ledger entry for a certificate.
func (r *LedgerRepository) FindByCertificate(ctx context.Context, certificateID string) (*domain.LedgerEntry, error) {
	var doc mongoLedgerEntry

	opts := options.FindOne().SetSort(bson.D{{Key: "anchored_at", Value: -1}})
	err := r.db.Collection(collectionLedger).FindOne(ctx, bson.M{"certificate_id": certificateID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("find ledger entry: %w", err)
	}

	return doc.toDomain(), nil
}
