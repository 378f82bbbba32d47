package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"voltio_back_end/internal/models"
)

const (
	cartTTL = 30 * 24 * time.Hour

	// Un checkout bloqué ne doit pas geler le panier pour toujours
	lockTTL = 2 * time.Minute

	// Rejeux d'une mutation quand une écriture concurrente invalide le WATCH
	maxMutateRetries = 100
)

// ErrCartLocked : un checkout est en cours, le panier est gelé jusqu'à son issue
var ErrCartLocked = errors.New("un checkout est déjà en cours pour ce panier")

// Store est l'unique écrivain du panier. Toute mutation passe par ici,
// et toute mutation est refusée tant qu'un checkout est en vol.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func cartKey(clientID int) string { return fmt.Sprintf("cart:%d", clientID) }
func lockKey(clientID int) string { return fmt.Sprintf("cart_lock:%d", clientID) }

// Items retourne les lignes du panier (vide si aucune clé)
func (s *Store) Items(ctx context.Context, clientID int) ([]models.CartItem, error) {
	data, err := s.rdb.Get(ctx, cartKey(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("panier corrompu: %w", err)
	}
	return items, nil
}

// Add ajoute un produit ou cumule la quantité s'il est déjà présent
func (s *Store) Add(ctx context.Context, clientID int, item models.CartItem) ([]models.CartItem, error) {
	if item.Quantity <= 0 {
		return nil, errors.New("quantité invalide")
	}

	return s.mutate(ctx, clientID, func(items []models.CartItem) []models.CartItem {
		for i := range items {
			if items[i].ProductID == item.ProductID {
				items[i].Quantity += item.Quantity
				return items
			}
		}
		return append(items, item)
	})
}

// UpdateQuantity fixe la quantité d'une ligne ; zéro ou moins supprime la ligne
func (s *Store) UpdateQuantity(ctx context.Context, clientID, productID, quantity int) ([]models.CartItem, error) {
	return s.mutate(ctx, clientID, func(items []models.CartItem) []models.CartItem {
		out := items[:0]
		for _, it := range items {
			if it.ProductID == productID {
				if quantity <= 0 {
					continue
				}
				it.Quantity = quantity
			}
			out = append(out, it)
		}
		return out
	})
}

// Remove supprime une ligne du panier
func (s *Store) Remove(ctx context.Context, clientID, productID int) ([]models.CartItem, error) {
	return s.mutate(ctx, clientID, func(items []models.CartItem) []models.CartItem {
		out := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				out = append(out, it)
			}
		}
		return out
	})
}

// Clear vide le panier (chemin succès du checkout uniquement)
func (s *Store) Clear(ctx context.Context, clientID int) error {
	if err := s.rdb.Del(ctx, cartKey(clientID)).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, cartKey(clientID), "cleared")
	return nil
}

// mutate applique fn sous transaction optimiste : deux modifications
// simultanées du même panier (double-clic sur "Ajouter") ne peuvent pas
// s'écraser mutuellement, la perdante rejoue sur l'état frais
func (s *Store) mutate(ctx context.Context, clientID int, fn func([]models.CartItem) []models.CartItem) ([]models.CartItem, error) {
	if s.IsLocked(ctx, clientID) {
		return nil, ErrCartLocked
	}

	key := cartKey(clientID)
	var items []models.CartItem

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			items = []models.CartItem{}
		case err != nil:
			return err
		default:
			if err := json.Unmarshal([]byte(data), &items); err != nil {
				return fmt.Errorf("panier corrompu: %w", err)
			}
		}

		items = fn(items)

		payload, err := json.Marshal(items)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, cartTTL)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		err := s.rdb.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.rdb.Publish(ctx, key, "updated")
		return items, nil
	}
	return nil, errors.New("le panier est trop sollicité, réessayez")
}

// Subscribe ouvre le canal pub/sub des changements du panier (websocket)
func (s *Store) Subscribe(ctx context.Context, clientID int) *redis.PubSub {
	return s.rdb.Subscribe(ctx, cartKey(clientID))
}

// --- Verrou de checkout ---

// Lock pose le verrou de checkout ; false si un checkout est déjà en vol
func (s *Store) Lock(ctx context.Context, clientID int) (bool, error) {
	return s.rdb.SetNX(ctx, lockKey(clientID), "1", lockTTL).Result()
}

// Unlock libère le verrou, quel que soit le résultat du checkout
func (s *Store) Unlock(ctx context.Context, clientID int) error {
	return s.rdb.Del(ctx, lockKey(clientID)).Err()
}

func (s *Store) IsLocked(ctx context.Context, clientID int) bool {
	n, err := s.rdb.Exists(ctx, lockKey(clientID)).Result()
	return err == nil && n > 0
}
