// Package nanoid generates short, URL-safe identifiers. Feed items
// often arrive without stable server-side keys; these make convenient
// synthetic keys for the paging key index.
package nanoid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultSize = 16

	lowercase   = "abcdefghijklmnopqrstuvwxyz"
	uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits      = "0123456789"
	alphanumber = lowercase + uppercase + digits
)

// getSize returns the provided size or the default size if not provided
func getSize(l ...int) int {
	if len(l) > 0 {
		return l[0]
	}
	return defaultSize
}

// Must generates a NanoID with optional length using the default alphabet
func Must(l ...int) string {
	return gonanoid.Must(getSize(l...))
}

// String generates a NanoID using letters and digits with optional length
func String(l ...int) string {
	return gonanoid.MustGenerate(alphanumber, getSize(l...))
}

// Lower generates a NanoID using only lowercase letters with optional length
func Lower(l ...int) string {
	return gonanoid.MustGenerate(lowercase, getSize(l...))
}

// Upper generates a NanoID using only uppercase letters with optional length
func Upper(l ...int) string {
	return gonanoid.MustGenerate(uppercase, getSize(l...))
}

// Number generates a NanoID using only digits with optional length
func Number(l ...int) string {
	return gonanoid.MustGenerate(digits, getSize(l...))
}
