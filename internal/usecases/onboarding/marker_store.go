package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/agentpay/agentpay-api/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Markers expiram sozinhos: um wizard abandonado volta ao estado inicial
// depois de um dia, sem precisar de limpeza manual.
const markerTTL = 24 * time.Hour

// MarkerStore persiste o estado das operações de onboarding entre requisições.
// Cada seller tem no máximo um marker por tipo de operação.
type MarkerStore interface {
	Save(ctx context.Context, marker *domain.OperationMarker) error
	Get(ctx context.Context, sellerID string, kind domain.OperationKind) (*domain.OperationMarker, error)
	Clear(ctx context.Context, sellerID string, kind domain.OperationKind) error
}

type RedisMarkerStore struct {
	client *redis.Client
}

func NewRedisMarkerStore(client *redis.Client) MarkerStore {
	return &RedisMarkerStore{client: client}
}

func markerKey(sellerID string, kind domain.OperationKind) string {
	return fmt.Sprintf("onboarding:%s:%s", sellerID, kind)
}

func (s *RedisMarkerStore) Save(ctx context.Context, marker *domain.OperationMarker) error {
	marker.UpdatedAt = time.Now()

	payload, err := json.Marshal(marker)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar o marker de onboarding")
	}

	key := markerKey(marker.SellerID, marker.Kind)
	if err := s.client.Set(ctx, key, payload, markerTTL).Err(); err != nil {
		return errors.Wrapf(err, "erro ao salvar o marker %s", key)
	}

	return nil
}

// Get devolve nil quando não existe marker, o que equivale ao estado ocioso.
func (s *RedisMarkerStore) Get(ctx context.Context, sellerID string, kind domain.OperationKind) (*domain.OperationMarker, error) {
	key := markerKey(sellerID, kind)

	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar o marker %s", key)
	}

	marker := &domain.OperationMarker{}
	if err := json.Unmarshal(payload, marker); err != nil {
		return nil, errors.Wrapf(err, "erro ao desserializar o marker %s", key)
	}

	return marker, nil
}

func (s *RedisMarkerStore) Clear(ctx context.Context, sellerID string, kind domain.OperationKind) error {
	key := markerKey(sellerID, kind)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "erro ao remover o marker %s", key)
	}

	return nil
}
