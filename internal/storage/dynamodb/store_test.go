package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	store := NewStore(fake, "checkout_drafts", time.Hour)

	_, err := store.Get(ctx, "checkout:draft:s1")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "checkout:draft:s1", []byte(`{"email":"ada@example.com"}`)))
	assert.Equal(t, 1, fake.putCalls)

	item := fake.table["checkout:draft:s1"]
	require.NotNil(t, item)
	assert.IsType(t, &types.AttributeValueMemberB{}, item["value"])
	assert.IsType(t, &types.AttributeValueMemberN{}, item["expires_at"])

	value, err := store.Get(ctx, "checkout:draft:s1")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"ada@example.com"}`, string(value))

	require.NoError(t, store.Remove(ctx, "checkout:draft:s1"))
	_, err = store.Get(ctx, "checkout:draft:s1")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStore_ExpiredRecord(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeDynamo(), "checkout_drafts", time.Hour)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.nowFunc = func() time.Time { return now }
	require.NoError(t, store.Set(ctx, "checkout:draft:s1", []byte(`{}`)))

	store.nowFunc = func() time.Time { return now.Add(2 * time.Hour) }
	_, err := store.Get(ctx, "checkout:draft:s1")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStore_Ping(t *testing.T) {
	ctx := context.Background()

	t.Run("Active table", func(t *testing.T) {
		store := NewStore(newFakeDynamo(), "checkout_drafts", 0)
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("Missing table", func(t *testing.T) {
		fake := newFakeDynamo()
		fake.describeErr = &types.ResourceNotFoundException{Message: strPtr("Requested resource not found")}
		store := NewStore(fake, "checkout_drafts", 0)

		err := store.Ping(ctx)
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Table being created", func(t *testing.T) {
		fake := newFakeDynamo()
		fake.status = types.TableStatusCreating
		store := NewStore(fake, "checkout_drafts", 0)

		assert.Error(t, store.Ping(ctx))
	})
}

func strPtr(s string) *string { return &s }
