package models

import "time"

// HistoryEntry представляет запись истории покупок пользователя.
// Записи создаются только в рамках транзакции покупки и никогда
// не изменяются, кроме добавления оценки и отзыва постфактум.
type HistoryEntry struct {
	ID           int       // Уникальный идентификатор записи
	UserUID      string    // Идентификатор пользователя
	PlanID       int       // Идентификатор купленного плана
	PlanName     string    // Название плана (для отображения)
	PurchaseDate time.Time // Дата покупки
	Rating       *int      // Оценка по шкале 1..5, nil если не выставлена
	Review       *string   // Текстовый отзыв, nil если не оставлен
}

// DummyRating используется для приёма оценки из JSON-запроса.
// Шкала оценки ограничена диапазоном 1..5.
type DummyRating struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"max=1000"`
}
