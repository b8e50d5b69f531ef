package utils

import "strings"

// Slugify derives a URL slug from a title: lowercase, words joined by
// hyphens, anything outside [a-z0-9] dropped.  Used for tour slugs when
// the client does not supply one.
func Slugify(title string) string {
    var b strings.Builder
    lastHyphen := true // suppress a leading hyphen
    for _, r := range strings.ToLower(strings.TrimSpace(title)) {
        switch {
        case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
            b.WriteRune(r)
            lastHyphen = false
        default:
            if !lastHyphen {
                b.WriteByte('-')
                lastHyphen = true
            }
        }
    }
    return strings.TrimSuffix(b.String(), "-")
}
