package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/certchain/certificate-system/internal/api/metrics"
	"github.com/certchain/certificate-system/internal/core/ports"
)

const defaultVerifyTTL = 10 * time.Minute

// VerifyCache stores verification results in Redis.
// Key format: verify:<certificate_id>
type VerifyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerifyCache creates a VerifyCache. A non-positive ttl uses defaultVerifyTTL.
func NewVerifyCache(client *redis.Client, ttl time.Duration) *VerifyCache {
	if ttl <= 0 {
		ttl = defaultVerifyTTL
	}
	return &VerifyCache{client: client, ttl: ttl}
}

type cachedVerification struct {
	CertificateID string `json:"certificateId"`
	Valid         bool   `json:"valid"`
	Message       string `json:"message"`
}

func (c *VerifyCache) Get(ctx context.Context, certificateID string) (*ports.Verification, bool, error) {
	raw, err := c.client.Get(ctx, key(certificateID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.VerifyCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("verify cache get: %w", err)
	}

	var cv cachedVerification
	if err := json.Unmarshal(raw, &cv); err != nil {
		return nil, false, fmt.Errorf("verify cache decode: %w", err)
	}

	metrics.VerifyCacheTotal.WithLabelValues("hit").Inc()
	return &ports.Verification{CertificateID: cv.CertificateID, Valid: cv.Valid, Message: cv.Message}, true, nil
}

func (c *VerifyCache) Set(ctx context.Context, v *ports.Verification) error {
	raw, err := json.Marshal(cachedVerification{CertificateID: v.CertificateID, Valid: v.Valid, Message: v.Message})
	if err != nil {
		return fmt.Errorf("verify cache encode: %w", err)
	}
	return c.client.Set(ctx, key(v.CertificateID), raw, c.ttl).Err()
}

func (c *VerifyCache) Invalidate(ctx context.Context, certificateID string) error {
	return c.client.Del(ctx, key(certificateID)).Err()
}

func key(certificateID string) string {
	return "verify:" + certificateID
}
