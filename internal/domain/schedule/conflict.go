package schedule

// HasConflict decide se um candidato (start, duração) cruza algum agendamento
// não cancelado do mesmo barbeiro no mesmo dia. Regra meio-aberta: encostar
// na borda não conflita. Determinístico: mesma entrada, mesmo veredito.
//
// A grade já marca slots ocupados, mas o orquestrador roda este check de novo
// na submissão, contra leitura fresca: fecha a janela entre renderizar os
// slots e o cliente confirmar. Não é código redundante.
func HasConflict(startMin, durationMin int, existing []Booking) bool {
	if durationMin <= 0 {
		durationMin = DefaultDurationMin
	}

	for _, b := range existing {
		d := b.DurationMin
		if d <= 0 {
			d = DefaultDurationMin
		}
		if Overlaps(startMin, durationMin, b.StartMin, d) {
			return true
		}
	}

	return false
}
