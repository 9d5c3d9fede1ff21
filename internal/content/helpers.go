package content

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/marquee/internal/catalog"
)

func formatRuntime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func tmdbPath(kind catalog.MediaKind) string {
	if kind == catalog.KindShow {
		return "tv"
	}
	return "movie"
}

func tmdbURL(record catalog.TitleRecord) string {
	return fmt.Sprintf("https://www.themoviedb.org/%s/%s", tmdbPath(record.Kind), record.ID)
}

// escapeCell keeps table cells from breaking the markdown table.
func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}

func countryFlag(code string) string {
	code = strings.ToUpper(code)
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return "🌐"
	}
	// Regional indicator symbols start at U+1F1E6 for 'A'
	const base = 0x1F1E6
	return string([]rune{rune(base + int(code[0]-'A')), rune(base + int(code[1]-'A'))})
}
