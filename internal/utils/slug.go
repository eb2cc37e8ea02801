package utils

import (
  "strings"
  "unicode"
)

// Slugify lowercases the title and collapses anything that is not a letter or
// digit into single hyphens.
func Slugify(title string) string {
  var b strings.Builder
  lastHyphen := true
  for _, r := range strings.ToLower(title) {
    if unicode.IsLetter(r) || unicode.IsDigit(r) {
      b.WriteRune(r)
      lastHyphen = false
      continue
    }
    if !lastHyphen {
      b.WriteRune('-')
      lastHyphen = true
    }
  }
  return strings.Trim(b.String(), "-")
}
