package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// exclusion_violation, disparado pela constraint EXCLUDE de agendamentos.
const pgExclusionViolation = "23P01"

// IsExclusionConflict reconhece a violação da constraint de exclusão do
// Postgres que protege (barbeiro, data, intervalo) no nível do banco. É o
// "compare-and-swap" que o recheck em memória não consegue garantir sozinho.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}
