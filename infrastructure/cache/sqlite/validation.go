// ABOUTME: Key and value validation for the SQLite cache
// ABOUTME: Rejects inputs that would corrupt rows or bloat the database file

package sqlite

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// maxKeyLength bounds cache keys. URL-derived keys run long, but
	// anything past this is a caller bug.
	maxKeyLength = 512

	// maxValueBytes caps a single cached value
	maxValueBytes = 1024 * 1024
)

// ValidateKey rejects keys that cannot be stored safely. Statements
// are parameterized, so this guards row hygiene, not injection.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	return nil
}

// ValidateValue rejects values that cannot be stored safely.
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueBytes {
		return fmt.Errorf("value too large: max %d bytes", maxValueBytes)
	}

	return nil
}
