package dindr

import (
	"crypto/rand"
	"fmt"
)

// CodeLength is the length of a session join code.
const CodeLength = 6

// codeAlphabet excludes nothing: codes are matched case-sensitively and
// clients upcase user input before submitting.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSessionCode returns a random 6-character uppercase alphanumeric
// session code. Codes are human-typable and shared out of band; callers
// must treat collisions as possible (the store rejects duplicate ids).
func NewSessionCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session code: %w", err)
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), nil
}
