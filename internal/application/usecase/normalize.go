package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName recorta espacios y lleva el texto a NFC para que "Café" compuesto y
// descompuesto agrupen igual en los reportes por categoría.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
