package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Grade de 30 em 30 minutos.
	SlotMinutes = 30

	// Janela padrão quando o barbeiro nunca configurou expediente.
	DefaultWindowStart = 9 * 60  // 09:00
	DefaultWindowEnd   = 19 * 60 // 19:00

	// Duração assumida quando um serviço/agendamento não informa a sua.
	DefaultDurationMin = 30
)

// ToMinutes converte "H:MM" ou "HH:MM" em minutos desde meia-noite.
// Parsing leniente: componente ausente ou ilegível vale 0. Quem precisa
// rejeitar formato inválido valida na borda, antes de chegar aqui.
func ToMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)

	h, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	m := 0
	if len(parts) > 1 {
		m, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}

	return h*60 + m
}

// Label devolve o rótulo "HH:MM" com zero à esquerda.
func Label(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Overlaps testa interseção de intervalos meio-abertos [start, start+dur).
// Encostar na borda (um termina exatamente quando o outro começa) NÃO é
// sobreposição: 10:00–10:30 e 10:30–11:00 convivem.
func Overlaps(startA, durA, startB, durB int) bool {
	return startA < startB+durB && startB < startA+durA
}
