// Package handoff keeps pending booking form data alive across an auth
// redirect. The storefront saves the form, sends the user to login with the
// returned resume token in the return URL, and resumes from the token
// afterwards. Tokens are single-use and expire.
package handoff

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/travelfront/internal/models"
)

// Pending is the serialized wizard state parked behind a resume token.
type Pending struct {
	FlightID  string               `json:"flight_id"`
	Passenger models.PassengerForm `json:"passenger"`
	SavedAt   time.Time            `json:"saved_at"`
}

type Store interface {
	Save(ctx context.Context, p Pending) (token string, err error)
	Resume(ctx context.Context, token string) (*Pending, bool, error)
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func (s *RedisStore) Save(ctx context.Context, p Pending) (string, error) {
	p.SavedAt = time.Now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, key(token), data, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resume fetches and deletes in one round trip so a token cannot be replayed.
func (s *RedisStore) Resume(ctx context.Context, token string) (*Pending, bool, error) {
	data, err := s.client.GetDel(ctx, key(token)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var p Pending
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(token string) string {
	return "handoff:" + token
}
