package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

// visitorLog logs page views with a salted hash instead of the client IP.
// Nothing is stored; the salt lives only as long as the process, so hashes
// cannot be linked across restarts.
type visitorLog struct {
	salt   string
	logf   func(format string, args ...any)
	skipUA []string
}

func newVisitorLog() *visitorLog {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate visitor salt:", err)
	}
	return &visitorLog{
		salt:   hex.EncodeToString(b),
		logf:   log.Printf,
		skipUA: []string{"bot", "crawler", "spider"},
	}
}

// hashIP is stable per IP for the life of the process.
func (v *visitorLog) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + v.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// tracked reports whether a request is a page view worth logging.
func (v *visitorLog) tracked(c *gin.Context) bool {
	path := c.Request.URL.Path
	for _, prefix := range []string{"/static/", "/images/", "/hero/", "/ws/", "/healthz", "/favicon"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	// Respect Do Not Track
	if c.GetHeader("DNT") == "1" {
		return false
	}
	ua := strings.ToLower(c.GetHeader("User-Agent"))
	for _, s := range v.skipUA {
		if strings.Contains(ua, s) {
			return false
		}
	}
	return c.Request.Method == "GET"
}

func (v *visitorLog) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v.tracked(c) {
			v.logf("Visit %s %s", v.hashIP(c.ClientIP()), c.Request.URL.Path)
		}
		c.Next()
	}
}
