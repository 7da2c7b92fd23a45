// Package randid generates short random identifiers.
package randid

import (
	"crypto/rand"
	"math/big"
)

const (
	charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	// keyCharset omits characters that are easy to misread: 0, 1, I and O.
	keyCharset = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

	// KeyLen is the length of identifiers returned by Key.
	KeyLen = 8
)

// Generate returns a random lowercase alphanumeric string of length n.
func Generate(n int) string {
	return fromCharset(charset, n)
}

// Key returns an uppercase annotation key of KeyLen characters.
func Key() string {
	return fromCharset(keyCharset, KeyLen)
}

// IsKey reports whether s has the shape of a value returned by Key.
func IsKey(s string) bool {
	if len(s) != KeyLen {
		return false
	}
	for i := range len(s) {
		if !containsByte(keyCharset, s[i]) {
			return false
		}
	}
	return true
}

func fromCharset(set string, n int) string {
	if n <= 0 {
		return ""
	}

	limit := big.NewInt(int64(len(set)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic("randid: crypto/rand unavailable: " + err.Error())
		}
		b[i] = set[idx.Int64()]
	}
	return string(b)
}

func containsByte(set string, c byte) bool {
	for i := range len(set) {
		if set[i] == c {
			return true
		}
	}
	return false
}
