package marvel

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// TimestampLayout is the second-resolution layout of the ts query parameter.
const TimestampLayout = "2006-01-0215:04:05"

// Timestamp formats t for the ts query parameter.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Sign returns the hex MD5 digest of ts + privateKey + publicKey, as required by the
// API for server-side requests.
func Sign(ts, publicKey, privateKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}
