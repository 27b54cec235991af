package api

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Feed event types pushed to preview clients
const (
	EventLayoutReloaded  = "layout-reloaded"
	EventImportCompleted = "import-completed"
	EventSnapshotSaved   = "snapshot-saved"
)

// FeedClient represents a connected SSE client
type FeedClient struct {
	Storefront string
	Channel    chan FeedEvent
}

// FeedEvent represents a home feed change for SSE streaming
type FeedEvent struct {
	Storefront string                 `json:"storefront"`
	EventType  string                 `json:"event_type"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// FeedHub manages Server-Sent Events for live preview updates. Preview
// clients subscribe per storefront and hear about layout swaps, catalog
// imports, and snapshot writes as they happen.
type FeedHub struct {
	clients    map[string]map[chan FeedEvent]bool
	clientsMu  sync.RWMutex
	register   chan FeedClient
	unregister chan FeedClient
	broadcast  chan FeedEvent
	logger     *zap.Logger
}

// NewFeedHub creates a new feed hub
func NewFeedHub(logger *zap.Logger) *FeedHub {
	hub := &FeedHub{
		clients:    make(map[string]map[chan FeedEvent]bool),
		register:   make(chan FeedClient, 10),
		unregister: make(chan FeedClient, 10),
		broadcast:  make(chan FeedEvent, 100),
		logger:     logger,
	}

	go hub.run()
	return hub
}

// run processes hub operations
func (h *FeedHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.Storefront] == nil {
				h.clients[client.Storefront] = make(map[chan FeedEvent]bool)
			}
			h.clients[client.Storefront][client.Channel] = true
			h.logger.Debug("Preview client registered",
				zap.String("storefront", client.Storefront),
				zap.Int("clients", len(h.clients[client.Storefront])))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.Storefront]; exists {
				delete(clients, client.Channel)
				close(client.Channel)
				h.logger.Debug("Preview client unregistered",
					zap.String("storefront", client.Storefront),
					zap.Int("clients", len(clients)))
				if len(clients) == 0 {
					delete(h.clients, client.Storefront)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			if clients, exists := h.clients[event.Storefront]; exists {
				for clientChan := range clients {
					select {
					case clientChan <- event:
						// Event sent successfully
					default:
						// Client channel is full, skip
						h.logger.Warn("Preview client channel full, skipping event",
							zap.String("storefront", event.Storefront),
							zap.String("event_type", event.EventType))
					}
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast sends an event to all clients watching the storefront
func (h *FeedHub) Broadcast(event FeedEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("Broadcast channel full, dropping event",
			zap.String("event_type", event.EventType))
	}
}

// HandleSSE handles the Server-Sent Events endpoint for preview clients
func (h *FeedHub) HandleSSE(c *gin.Context) {
	storefront := c.DefaultQuery("storefront", "default")

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Cache-Control")

	// Create client channel
	clientChan := make(chan FeedEvent, 10)

	// Register client
	select {
	case h.register <- FeedClient{Storefront: storefront, Channel: clientChan}:
	default:
		c.JSON(500, gin.H{"error": "feed hub registration failed"})
		return
	}

	defer func() {
		select {
		case h.unregister <- FeedClient{Storefront: storefront, Channel: clientChan}:
		default:
			// Hub might be overloaded, just close channel
		}
	}()

	// Keep connection alive and stream events
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-clientChan:
			eventJSON, err := json.Marshal(event)
			if err != nil {
				h.logger.Warn("Failed to marshal feed event", zap.Error(err))
				return true
			}

			c.SSEvent("feed", string(eventJSON))
			return true

		case <-time.After(30 * time.Second):
			// Send ping to keep connection alive
			c.SSEvent("ping", `{"status": "alive", "timestamp": "`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			// Client disconnected
			return false
		}
	})
}

// GetActiveStorefronts returns storefronts with connected preview clients
func (h *FeedHub) GetActiveStorefronts() []string {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	storefronts := make([]string, 0, len(h.clients))
	for storefront := range h.clients {
		storefronts = append(storefronts, storefront)
	}
	return storefronts
}

// GetClientCount returns the number of connected clients for a storefront
func (h *FeedHub) GetClientCount(storefront string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	if clients, exists := h.clients[storefront]; exists {
		return len(clients)
	}
	return 0
}
