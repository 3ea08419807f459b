package validators

import "strings"

// NormalizePhone reduz o telefone aos dígitos: é assim que clientes são
// deduplicados entre agendamentos e entre sedes.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
