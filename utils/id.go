package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenId generates a connection scoped identifier.
func GenId() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
