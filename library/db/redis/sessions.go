package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	redisSDK "github.com/redis/go-redis/v9"
)

// SetSession stores the refresh session for ownerID, unconditionally
// replacing any prior session. TTL expiry is enforced by redis.
func (db *DB) SetSession(ctx context.Context, ownerID, token string, ttl time.Duration) error {
	sess := &RefreshSession{
		OwnerID:    ownerID,
		Token:      token,
		CreatedAt:  gutils.Clock.GetUTCNow(),
		TTLSeconds: int64(ttl / time.Second),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}

	if err = db.db.SetItem(ctx, KeyPrefixSession+ownerID, string(payload), ttl); err != nil {
		return errors.Wrap(err, "set session")
	}

	return nil
}

// GetSession loads the live session for ownerID, or nil when absent.
func (db *DB) GetSession(ctx context.Context, ownerID string) (*RefreshSession, error) {
	payload, err := db.db.GetItem(ctx, KeyPrefixSession+ownerID)
	if err != nil {
		if errors.Is(err, redisSDK.Nil) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "get session")
	}

	sess := new(RefreshSession)
	if err = json.Unmarshal([]byte(payload), sess); err != nil {
		return nil, errors.Wrap(err, "unmarshal session")
	}

	return sess, nil
}

// DelSession removes the session for ownerID.
func (db *DB) DelSession(ctx context.Context, ownerID string) error {
	if err := db.db.Del(ctx, KeyPrefixSession+ownerID).Err(); err != nil {
		return errors.Wrap(err, "del session")
	}

	return nil
}
