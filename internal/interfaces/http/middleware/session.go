// internal/interfaces/http/middleware/session.go
package middleware

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie is the name of the visitor session cookie
	SessionCookie = "session_id"

	// SessionIDKey is the gin context key holding the session id
	SessionIDKey = "session_id"

	sessionCookieMaxAge = 86400 // 24 hours

	// Lock entries idle this long are retired. Matches the cookie lifetime:
	// a session that old has no live cart left to protect.
	sessionLockTTL = 24 * time.Hour

	lockSweepInterval = 10 * time.Minute
)

// sessionLock serializes in-flight requests for one session. lastUsed shields
// it from the sweeper while requests still arrive.
type sessionLock struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // unix nanoseconds
}

var (
	sessionLocks  sync.Map
	nextLockSweep atomic.Int64
)

// Session assigns a visitor session id (creating one on first contact) and
// holds the per-session lock for the duration of the request. A shopping
// cart is scoped to exactly one session and must not be mutated by two
// requests at once.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(SessionIDKey, sessionID)

		lock := acquireSessionLock(sessionID)
		defer lock.mu.Unlock()

		maybeSweepSessionLocks()

		c.Next()
	}
}

// GetSessionID returns the session id attached to the request
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// ResetSession rotates the visitor's session id after a committed order: the
// response carries a fresh cookie, so the old cart's session ends with this
// request. The old lock entry stays in place until the sweeper retires it,
// so a request racing in with the old cookie still serializes behind this
// one.
func ResetSession(c *gin.Context) string {
	fresh := uuid.NewString()
	c.SetCookie(SessionCookie, fresh, sessionCookieMaxAge, "/", "", false, true)
	return fresh
}

// acquireSessionLock returns the session's mutex, locked. If the sweeper
// retired the entry between lookup and lock, acquisition retries on the
// replacement: holding a retired lock would not serialize against requests
// that mapped the fresh one.
func acquireSessionLock(sessionID string) *sessionLock {
	for {
		entry, _ := sessionLocks.LoadOrStore(sessionID, &sessionLock{})
		lock := entry.(*sessionLock)
		lock.lastUsed.Store(time.Now().UnixNano())
		lock.mu.Lock()

		if current, ok := sessionLocks.Load(sessionID); ok && current == entry {
			lock.lastUsed.Store(time.Now().UnixNano())
			return lock
		}
		lock.mu.Unlock()
	}
}

// maybeSweepSessionLocks retires lock entries idle past the TTL so the table
// does not grow without bound for abandoned sessions. At most one sweep runs
// per interval; entries currently held are left alone.
func maybeSweepSessionLocks() {
	now := time.Now()
	next := nextLockSweep.Load()
	if now.UnixNano() < next {
		return
	}
	if !nextLockSweep.CompareAndSwap(next, now.Add(lockSweepInterval).UnixNano()) {
		return
	}

	cutoff := now.Add(-sessionLockTTL).UnixNano()
	sessionLocks.Range(func(key, value any) bool {
		lock := value.(*sessionLock)
		if lock.lastUsed.Load() > cutoff {
			return true
		}
		if !lock.mu.TryLock() {
			return true
		}
		sessionLocks.Delete(key)
		lock.mu.Unlock()
		return true
	})
}
