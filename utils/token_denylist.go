package utils

import (
	"context"
	"sync"
	"time"
)

type denylistEntry struct {
	expiresAt time.Time
}

var (
	denylist   = map[string]denylistEntry{}
	denylistMu sync.RWMutex
)

// DenylistToken revokes a token until its natural expiration so logout takes
// effect immediately. Redis holds the entry when reachable; otherwise an
// in-memory map covers the single-process case.
func DenylistToken(token string, expiresAt time.Time) {
	if rc := GetRedis(); rc != nil {
		ttl := time.Until(expiresAt)
		if ttl <= 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, "jwt:denylist:"+token, "1", ttl).Err(); err == nil {
			return
		}
	}
	denylistMu.Lock()
	denylist[token] = denylistEntry{expiresAt: expiresAt}
	denylistMu.Unlock()
}

// IsTokenDenied checks whether a token was revoked before expiring.
func IsTokenDenied(token string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, "jwt:denylist:"+token).Result(); err == nil && n > 0 {
			return true
		}
	}
	denylistMu.RLock()
	entry, ok := denylist[token]
	denylistMu.RUnlock()
	if !ok {
		return false
	}

	if time.Now().After(entry.expiresAt) {
		denylistMu.Lock()
		delete(denylist, token)
		denylistMu.Unlock()
		return false
	}

	return true
}
