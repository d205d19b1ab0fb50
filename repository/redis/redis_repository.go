package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	redisclient "github.com/tanchung/sport-store/cmd/redis"
	"github.com/tanchung/sport-store/model"
)

// Repository holds the two things this service persists locally: login
// sessions and the pending-payment handoff that must survive the buyer's
// redirect to an external payment provider and back.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, sess *model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	SavePendingPayment(ctx context.Context, orderCode string, handoff *model.PaymentHandoff, ttl time.Duration) error
	GetPendingPayment(ctx context.Context, orderCode string) (*model.PaymentHandoff, error)
	ClearPendingPayment(ctx context.Context, orderCode string) error
}

type redis struct {
}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func pendingPaymentKey(orderCode string) string {
	return fmt.Sprintf("payment:pending:%s", orderCode)
}

func (r *redis) SetSession(ctx context.Context, sessionID string, sess *model.Session, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return client.Set(ctx, sessionKey(sessionID), b, ttl).Err()
}

func (r *redis) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	val, err := client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, sessionKey(sessionID)).Err()
}

// SavePendingPayment writes the handoff record for an order, replacing any
// previous one. The provider redirect comes back without a session, so the
// record is keyed by the order code echoed through the redirect.
func (r *redis) SavePendingPayment(ctx context.Context, orderCode string, handoff *model.PaymentHandoff, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	b, err := json.Marshal(handoff)
	if err != nil {
		return err
	}
	return client.Set(ctx, pendingPaymentKey(orderCode), b, ttl).Err()
}

func (r *redis) GetPendingPayment(ctx context.Context, orderCode string) (*model.PaymentHandoff, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	val, err := client.Get(ctx, pendingPaymentKey(orderCode)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var handoff model.PaymentHandoff
	if err := json.Unmarshal(val, &handoff); err != nil {
		return nil, err
	}
	return &handoff, nil
}

func (r *redis) ClearPendingPayment(ctx context.Context, orderCode string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, pendingPaymentKey(orderCode)).Err()
}
