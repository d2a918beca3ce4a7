package models

import "time"

// Статусы подписки. Статус "expired" никогда не записывается в хранилище:
// истечение всегда вычисляется из ends_at, чтобы не заводить фоновый
// процесс и второй источник истины.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Subscription представляет купленную подписку на тарифный план.
// Окно действия задаётся парой PurchasedAt/EndsAt, где
// EndsAt = PurchasedAt + длительность плана.
type Subscription struct {
	ID          int       // Уникальный идентификатор подписки
	UserUID     string    // Идентификатор пользователя-владельца
	PlanID      int       // Идентификатор купленного плана
	Status      string    // active или cancelled
	PurchasedAt time.Time // Момент покупки
	EndsAt      time.Time // Момент окончания доступа
}

// ActiveAt сообщает, действует ли подписка в момент now.
// Единственный предикат активности во всей системе: сохранённый статус
// сам по себе не является доверенным признаком.
func (s Subscription) ActiveAt(now time.Time) bool {
	return s.Status == StatusActive && now.Before(s.EndsAt)
}

// SubscriptionInfo — подписка с данными плана для отображения пользователю.
type SubscriptionInfo struct {
	Subscription
	PlanName        string // Название плана
	PriceCents      int    // Цена плана
	DurationMinutes int    // Длительность плана в минутах
}

// DashboardSummary — сводка по активным подпискам пользователя.
type DashboardSummary struct {
	Username            string        `json:"username"`
	ActiveSubscriptions []ActiveEntry `json:"active_subscriptions"`
	TotalPurchases      int           `json:"total_purchases"`
}

// ActiveEntry — активная подписка с остатком времени для сводки.
type ActiveEntry struct {
	SubscriptionID int    `json:"subscription_id"`
	PlanName       string `json:"plan_name"`
	EndsAt         string `json:"ends_at"`
	RemainingTime  string `json:"remaining_time"`
}

// DummyPurchase используется для приёма данных покупки из JSON-запроса.
type DummyPurchase struct {
	PlanID int `json:"plan_id" validate:"required,gt=0"`
}
