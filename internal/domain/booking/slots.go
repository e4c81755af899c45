package booking

import "time"

// ===============================
// Slot Generator
// ===============================

// GenerateSlots produz a grade de horários reserváveis ("HH:MM") de um dia.
//
// Intervalo meio-aberto: o último slot emitido começa estritamente antes de
// WorkEnd. Se a data é hoje (no fuso de `date`), slots já passados em relação
// a `now` são suprimidos. A função não verifica se a duração do serviço
// estoura o expediente; isso é responsabilidade de quem agenda.
//
// Determinística e sem efeitos colaterais.
func GenerateSlots(date time.Time, hours BusinessHours, now time.Time) ([]string, error) {
	start, err := parseHM(hours.WorkStart)
	if err != nil {
		return nil, err
	}

	end, err := parseHM(hours.WorkEnd)
	if err != nil {
		return nil, err
	}

	slots := []string{}

	if hours.SlotStepMin <= 0 || !start.Before(end) {
		return slots, nil
	}

	dayStart := at(date, start)
	dayEnd := at(date, end)

	nowLocal := now.In(date.Location())
	isToday := nowLocal.Year() == date.Year() &&
		nowLocal.Month() == date.Month() &&
		nowLocal.Day() == date.Day()

	step := time.Duration(hours.SlotStepMin) * time.Minute

	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(step) {
		if isToday && !cur.After(nowLocal) {
			continue
		}
		slots = append(slots, cur.Format("15:04"))
	}

	return slots, nil
}
