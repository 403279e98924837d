package sqlite

import (
	"strings"

	"github.com/benjamonnguyen/pomomo-timer"
)

var ErrNotFound = pomomo.ErrNotFound

// Scannable is satisfied by *sql.Row and *sql.Rows.
type Scannable interface {
	Scan(dest ...any) error
}

// GenerateParameters returns a placeholder group such as "(?, ?, ?)".
func GenerateParameters(n int) string {
	if n <= 0 {
		return "()"
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ")"
}
