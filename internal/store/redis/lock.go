package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/flowmasterhq/flowmaster/internal/domain"
)

// Locker serializes tenant provisioning across the deployment with a SETNX
// lease. It narrows the window where two concurrent provisioning requests
// for the same identifier both pass the uniqueness check; the unique
// constraint on tenant.tenant_id remains the hard guarantee.
type Locker struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*Locker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Locker{client: client}, nil
}

func (l *Locker) Close() error {
	if err := l.client.Close(); err != nil {
		return fmt.Errorf("redis.Locker.Close: %w", err)
	}
	return nil
}

// ProvisionLockKey names the lease for one tenant identifier.
func ProvisionLockKey(tenantID string) string {
	return "provision:lock:" + tenantID
}

// releaseScript deletes the lease only when it still holds our token, so an
// expired lease taken over by another holder is never released from here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Acquire takes the lease for one tenant identifier. When the lease is
// already held it returns domain.ErrConflict. The returned function releases
// the lease; it is safe to call after the TTL elapsed.
func (l *Locker) Acquire(ctx context.Context, tenantID string, ttl time.Duration) (func(), error) {
	key := ProvisionLockKey(tenantID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis.Locker.Acquire: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("redis.Locker.Acquire: provisioning already in progress for %q: %w",
			tenantID, domain.ErrConflict)
	}

	release := func() {
		// Detached context: release must work even when the request was canceled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}

	return release, nil
}
