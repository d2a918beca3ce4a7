package models

import "time"

// Plan представляет тарифный план доступа к Wi-Fi.
// Цена хранится в минорных единицах валюты (копейки/центы),
// чтобы исключить ошибки округления при работе с float.
type Plan struct {
	ID              int    // Уникальный идентификатор плана
	Name            string // Название плана (уникальное)
	PriceCents      int    // Цена в минорных единицах валюты
	DurationMinutes int    // Длительность доступа в минутах
}

// Duration возвращает длительность плана как time.Duration.
func (p Plan) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}
