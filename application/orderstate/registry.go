package orderstate

import (
	"sync"

	orderrepo "github.com/tanchung/sport-store/repository/order"
	"github.com/tanchung/sport-store/thirdparty/rabbitmq"
)

// Registry hands out one Coordinator per user, created on first touch.
// Coordinator state is in-process only; a restart starts everyone fresh.
type Registry struct {
	mu        sync.Mutex
	gateway   orderrepo.OrderGateway
	publisher *rabbitmq.Publisher
	coords    map[uint64]*Coordinator
}

func NewRegistry(gateway orderrepo.OrderGateway, publisher *rabbitmq.Publisher) *Registry {
	return &Registry{
		gateway:   gateway,
		publisher: publisher,
		coords:    make(map[uint64]*Coordinator),
	}
}

func (r *Registry) ForUser(userID uint64) *Coordinator {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coords[userID]
	if !ok {
		c = NewCoordinator(userID, r.gateway, r.publisher)
		r.coords[userID] = c
	}
	return c
}
