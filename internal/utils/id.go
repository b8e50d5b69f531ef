package utils

import (
    "crypto/rand"
    "fmt"
    "strings"
)

// codeAlphabet is the character set used for external order codes.  It
// excludes lowercase letters so codes survive case-insensitive channels
// (payment provider dashboards, support emails).
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCode builds an externally visible identifier of the form
// PREFIX-XXXXXXXX where the suffix is `length` characters drawn from
// codeAlphabet using crypto/rand.  It is used for client-facing order
// codes, which stay distinct from internal row IDs.
func NewCode(prefix string, length int) (string, error) {
    if length <= 0 {
        return "", fmt.Errorf("code length must be positive, got %d", length)
    }
    buf := make([]byte, length)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    out := make([]byte, length)
    for i, b := range buf {
        out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
    }
    return strings.ToUpper(prefix) + "-" + string(out), nil
}
