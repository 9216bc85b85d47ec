package operator

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// Operator is an admin-console account. PasswordDigest holds the hex SHA-256
// of the password; comparison is constant time.
type Operator struct {
	Username       string
	PasswordDigest string
	CreatedAt      time.Time
}

func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (o *Operator) CheckPassword(password string) bool {
	digest := Digest(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(o.PasswordDigest)) == 1
}
