package network

import (
	"hazard-server/pkg/api"
	"hazard-server/pkg/logger"
	"sync"

	"github.com/sirupsen/logrus"
)

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии хоста (VR-клиент, браузер или бот)
func (b *Broadcaster) Register(sessionID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика, только если ch все еще его канал.
// После переподключения с тем же токеном старое соединение не трогает
// новое. Возвращает true, если подписка была снята.
func (b *Broadcaster) Unregister(sessionID string, ch chan api.ServerResponse) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.subscribers[sessionID]
	if !ok || current != ch {
		return false
	}
	close(current)
	delete(b.subscribers, sessionID)
	return true
}

// SendTo отправляет сообщение конкретной сессии (Unicast)
func (b *Broadcaster) SendTo(sessionID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		select {
		case ch <- msg:
		default:
			logger.Log.WithFields(logrus.Fields{
				"component":  "hub",
				"session_id": sessionID,
				"type":       msg.Type,
			}).Warn("Subscriber channel full, message dropped")
		}
	}
}

// Broadcast отправляет всем, кроме сессии except (зрители таблицы рекордов)
func (b *Broadcaster) Broadcast(msg api.ServerResponse, except string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		if id == except {
			continue
		}
		select {
		case ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключена ли сессия
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
