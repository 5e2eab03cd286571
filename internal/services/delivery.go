package services

// Исходящие события реального времени
const (
	EventReceiveMessage      = "receiveMessage"
	EventNewNotification     = "newNotification"
	EventNotificationRead    = "notificationRead"
	EventNotificationDeleted = "notificationDeleted"
)

// Deliverer адресная доставка событий подключённым клиентам.
// Доставка best-effort: отсутствие клиентов в комнате не ошибка.
type Deliverer interface {
	Push(roomID string, event string, payload any)
	Broadcast(event string, payload any)
}

// NotificationRef полезная нагрузка notificationRead и notificationDeleted
type NotificationRef struct {
	NotificationID string `json:"notificationId"`
}
