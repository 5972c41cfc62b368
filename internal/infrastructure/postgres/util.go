package postgres

import (
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/medico-api/internal/domain/repository"
)

// replaceSource fills the single %s table placeholder of a select template.
func replaceSource(tpl, source string) string {
	return strings.Replace(tpl, "%s", source, 1)
}

// checkIDs rejects ids that can never match a uuid primary key before they
// reach the driver, which would otherwise fail while encoding them.
func checkIDs(ids ...string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return repository.ErrNotFound
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns q into an ILIKE pattern that matches q as a plain
// substring. Use it with ESCAPE '\'.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
