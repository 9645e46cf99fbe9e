package changes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event is one entity mutation on a tenant's change feed.
type Event struct {
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	At       time.Time `json:"at"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

const (
	EntityVehicles       = "vehicles"
	EntityVariants       = "vehicle_variants"
	EntityBookings       = "bookings"
	EntityAppUsers       = "app_users"
	EntityCarOwners      = "car_owners"
	EntityWebsiteContent = "website_content"
	EntityGallery        = "gallery_images"
	EntitySettings       = "system_settings"
	EntityNotifications  = "notifications"
	EntityTenant         = "tenant"
)

// Broker fans entity mutations out to per-tenant change feeds. Delivery
// is at-most-once; consumers that need a consistent view re-list.
type Broker interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe opens a feed for one tenant. An empty entity receives
	// every entity type. The caller owns the returned handle and must
	// Close it to release the feed.
	Subscribe(ctx context.Context, tenantID uuid.UUID, entity string) (*Subscription, error)
}

// Subscription is a disposable handle on a change feed. Close is
// idempotent; after it the event channel drains and closes.
type Subscription struct {
	events  <-chan Event
	release func()
	once    sync.Once
}

func NewSubscription(events <-chan Event, release func()) *Subscription {
	return &Subscription{events: events, release: release}
}

func (s *Subscription) Events() <-chan Event { return s.events }

func (s *Subscription) Close() {
	s.once.Do(s.release)
}

type redisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) Broker {
	return &redisBroker{client: client}
}

func feedChannel(tenantID uuid.UUID) string {
	return fmt.Sprintf("fleetrent:changes:%s", tenantID.String())
}

func (b *redisBroker) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, feedChannel(event.TenantID), payload).Err()
}

func (b *redisBroker) Subscribe(ctx context.Context, tenantID uuid.UUID, entity string) (*Subscription, error) {
	pubsub := b.client.Subscribe(ctx, feedChannel(tenantID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Dropping malformed change event on %s: %v", msg.Channel, err)
				continue
			}
			if entity != "" && event.Entity != entity {
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return NewSubscription(out, func() { pubsub.Close() }), nil
}

// Emit publishes best effort: a nil broker drops the event and a
// publish failure never fails the mutation that produced it.
func Emit(ctx context.Context, b Broker, entity, action string, tenantID, id uuid.UUID) {
	if b == nil {
		return
	}
	if err := b.Publish(ctx, Event{Entity: entity, Action: action, ID: id, TenantID: tenantID}); err != nil {
		log.Printf("Failed to publish %s %s event for tenant %s: %v", entity, action, tenantID, err)
	}
}
