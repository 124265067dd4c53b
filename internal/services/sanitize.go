package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Имена проектов и пользователей хранятся как обычный текст, разметку вырезаем целиком.
var plainText = bluemonday.StrictPolicy()

func plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}
