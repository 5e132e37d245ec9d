package service

import (
	"strings"
	"unicode/utf8"
)

// firstJSONObject returns the first brace-delimited JSON object in a model
// reply, or "" if none is found. Model replies often wrap JSON in prose or
// markdown fences, so we cut from the first '{' to the last '}'.
func firstJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// firstJSONArray returns the first bracket-delimited JSON array in a model
// reply, or "" if none is found.
func firstJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// parseBullets extracts bullet lines from a model reply. Lines starting with
// a bullet symbol, dash or asterisk are kept with the marker stripped.
func parseBullets(text string) []string {
	bullets := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		var stripped string
		switch {
		case strings.HasPrefix(line, "•"):
			stripped = strings.TrimPrefix(line, "•")
		case strings.HasPrefix(line, "-"):
			stripped = strings.TrimPrefix(line, "-")
		case strings.HasPrefix(line, "*"):
			stripped = strings.TrimPrefix(line, "*")
		default:
			continue
		}
		stripped = strings.TrimSpace(stripped)
		if stripped != "" {
			bullets = append(bullets, stripped)
		}
	}
	return bullets
}

// truncate limits prompt input to n bytes without splitting a rune.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
