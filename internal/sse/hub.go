package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type NoticeEvent struct {
	ID        int64              `json:"id"`
	Type      models.TaskLogType `json:"type"`
	Status    models.TaskStatus  `json:"status"`
	EditorID  uuid.UUID          `json:"editor_id"`
	TeamID    uuid.UUID          `json:"team_id"`
	ProjectID *uuid.UUID         `json:"project_id,omitempty"`
	TaskID    *uuid.UUID         `json:"task_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

type receiverMessage struct {
	ReceiverID uuid.UUID
	Event      Event
}

// Hub fans notices out to the connected clients of their receiver.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *receiverMessage
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *receiverMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.UserID != msg.ReceiverID {
					continue
				}
				select {
				case client.Send <- data:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientCount reports how many clients are connected for userID.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, client := range h.clients {
		if client.UserID == userID {
			n++
		}
	}
	return n
}

// PublishNotice queues n for its receiver. It never blocks; when the queue is
// full the notice is dropped and stays readable through the notice list.
func (h *Hub) PublishNotice(n models.TaskLog) {
	msg := &receiverMessage{
		ReceiverID: n.ReceiverID,
		Event: Event{
			Type: "task_notice",
			Data: NoticeEvent{
				ID:        n.ID,
				Type:      n.Type,
				Status:    n.Status,
				EditorID:  n.EditorID,
				TeamID:    n.TeamID,
				ProjectID: n.ProjectID,
				TaskID:    n.TaskID,
				CreatedAt: n.CreatedAt,
			},
		},
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}
