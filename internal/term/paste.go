package term

import (
	"strings"
	"unicode"
)

// PasteLines splits pasted text into grid rows. CR, LF and CRLF end a row, a tab
// becomes one blank cell and other control characters are dropped. Trailing empty
// rows are removed.
func PasteLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "\x1b[200~"), "\x1b[201~")
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		var b strings.Builder
		for _, r := range raw {
			switch {
			case r == '\t':
				b.WriteRune(' ')
			case unicode.IsControl(r):
			default:
				b.WriteRune(r)
			}
		}
		lines = append(lines, b.String())
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}
