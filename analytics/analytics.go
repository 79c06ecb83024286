// Package analytics provides privacy-first page-view tracking for the blog
// engine. IP addresses are salted and hashed before storage, aggregates are
// the only thing exposed, and visits are pruned after a retention period.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// HashIP returns the salted hash stored in place of a visitor's IP.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(salt.value + ip))
	return hex.EncodeToString(sum[:])
}

// Visit represents a single page view.
type Visit struct {
	ID        int64     `json:"-"`
	Path      string    `json:"path"`
	IPHash    string    `json:"-"`
	Referrer  string    `json:"referrer"`
	Timestamp time.Time `json:"timestamp"`
}

// PathStat is the aggregate exposed per page.
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// pageViews mirrors the stored visits as a Prometheus counter so dashboards
// can watch traffic without querying the store.
var pageViews = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "waypost_page_views_total",
	Help: "Page views recorded by the analytics middleware.",
}, []string{"path"})
