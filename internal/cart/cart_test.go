package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltio_back_end/internal/models"
)

// setupTestStore démarre un miniredis et retourne le store branché dessus
func setupTestStore(t *testing.T) (*Store, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return NewStore(client), cleanup
}

func TestItems_EmptyCart(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	items, err := store.Items(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAdd_NewLineThenMerge(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	item := models.CartItem{ProductID: 1, Name: "Clavier", Price: 49.90, Quantity: 2}

	items, err := store.Add(ctx, 1, item)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Le même produit cumule la quantité au lieu de dupliquer la ligne
	items, err = store.Add(ctx, 1, item)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Add(context.Background(), 1, models.CartItem{ProductID: 1, Quantity: 0})

	assert.Error(t, err)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Add(ctx, 1, models.CartItem{ProductID: 1, Name: "A", Quantity: 2})
	require.NoError(t, err)
	_, err = store.Add(ctx, 1, models.CartItem{ProductID: 2, Name: "B", Quantity: 1})
	require.NoError(t, err)

	// Jamais de ligne à quantité zéro : elle disparaît
	items, err := store.UpdateQuantity(ctx, 1, 1, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ProductID)
}

func TestRemove_DropsOnlyTargetLine(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Add(ctx, 1, models.CartItem{ProductID: 1, Name: "A", Quantity: 1})
	require.NoError(t, err)
	_, err = store.Add(ctx, 1, models.CartItem{ProductID: 2, Name: "B", Quantity: 3})
	require.NoError(t, err)

	items, err := store.Remove(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ProductID)
}

func TestClear_EmptiesCart(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Add(ctx, 1, models.CartItem{ProductID: 1, Name: "A", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, 1))

	items, err := store.Items(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLock_FreezesMutations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Add(ctx, 1, models.CartItem{ProductID: 1, Name: "A", Quantity: 1})
	require.NoError(t, err)

	locked, err := store.Lock(ctx, 1)
	require.NoError(t, err)
	require.True(t, locked)

	// Panier gelé tant que le checkout est en vol
	_, err = store.Add(ctx, 1, models.CartItem{ProductID: 2, Name: "B", Quantity: 1})
	assert.ErrorIs(t, err, ErrCartLocked)
	_, err = store.UpdateQuantity(ctx, 1, 1, 5)
	assert.ErrorIs(t, err, ErrCartLocked)
	_, err = store.Remove(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrCartLocked)

	// Second verrou refusé : un seul checkout en vol
	locked, err = store.Lock(ctx, 1)
	require.NoError(t, err)
	assert.False(t, locked)

	// Un autre client n'est pas gelé
	_, err = store.Add(ctx, 2, models.CartItem{ProductID: 1, Name: "A", Quantity: 1})
	assert.NoError(t, err)

	require.NoError(t, store.Unlock(ctx, 1))
	_, err = store.Add(ctx, 1, models.CartItem{ProductID: 2, Name: "B", Quantity: 1})
	assert.NoError(t, err)
}

func TestAdd_ConcurrentEditsDoNotLoseUpdates(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	// Double-clic simulé : deux rafales d'ajouts simultanées sur la même
	// ligne, aucune ne doit écraser l'autre
	const perWorker = 20
	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := store.Add(ctx, 1, models.CartItem{ProductID: 1, Name: "Clavier", Quantity: 1})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	items, err := store.Items(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2*perWorker, items[0].Quantity)
}

func TestMutations_PublishCartChannel(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	pubsub := store.Subscribe(ctx, 1)
	defer pubsub.Close()
	_, err := pubsub.Receive(ctx) // confirmation d'abonnement
	require.NoError(t, err)

	_, err = store.Add(ctx, 1, models.CartItem{ProductID: 1, Name: "A", Quantity: 1})
	require.NoError(t, err)

	msg, err := pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "updated", msg.Payload)

	require.NoError(t, store.Clear(ctx, 1))

	msg, err = pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cleared", msg.Payload)
}
