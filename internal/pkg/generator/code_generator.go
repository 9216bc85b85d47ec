package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// GenerateSessionToken mints an opaque admin session token.
func (g *CodeGenerator) GenerateSessionToken() (string, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(randomBytes), nil
}

// GenerateEditSessionID mints a short id for one reorder dialog session.
func (g *CodeGenerator) GenerateEditSessionID() string {
	randomBytes := make([]byte, 5) // 5 bytes will give us 10 hex chars
	if _, err := rand.Read(randomBytes); err != nil {
		return ""
	}
	randomId := hex.EncodeToString(randomBytes)
	return fmt.Sprintf("E-%s", randomId)
}

// GenerateImageKey builds a collision-free object key for an uploaded item
// image, keeping the original extension.
func (g *CodeGenerator) GenerateImageKey(itemID int64, filename string) (string, error) {
	randomBytes := make([]byte, 6)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("items/%d/%s%s", itemID, hex.EncodeToString(randomBytes), ext), nil
}
