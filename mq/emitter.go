package mq

import (
	"context"
	"encoding/json"
	"log"

	"neonpet/rdx"
)

const eventsChannel = "storefront-events"

// Event is a storefront notification published over Redis pub/sub.
type Event struct {
	EntityType string `json:"entity_type"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"` // category id for product events
	Name       string `json:"name,omitempty"`
}

// Emit publishes an event. Failures are logged, never propagated; the
// storefront does not depend on delivery.
func Emit(eventName string, content Event) {
	content.Name = eventName
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartCacheWorker listens for catalog events and drops the cached product
// list of the affected category so the next read refetches from Mongo.
func StartCacheWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[CacheWorker] Listening for storefront events...")

	for msg := range ch {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[CacheWorker] Failed to parse event: %v", err)
			continue
		}

		if event.EntityType != "product" || event.ItemId == "" {
			continue
		}
		if err := rdx.RdxDel("catalog:products:" + event.ItemId); err != nil {
			log.Printf("[CacheWorker] Cache invalidation error: %v", err)
		}
	}
}
