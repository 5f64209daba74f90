package redis

import "time"

// RefreshSession is the single live refresh-token record for an owner.
type RefreshSession struct {
	OwnerID    string    `json:"owner_id"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
	TTLSeconds int64     `json:"ttl_seconds"`
}
