package service

import (
	"crypto/rand"
	"encoding/base64"
)

// randomBytesLen is the amount of entropy carried by secrets and tokens.
const randomBytesLen = 32

func randomString() (string, error) {
	b := make([]byte, randomBytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
