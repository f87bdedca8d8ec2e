package identity

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ichiba_backend/internals/helpers/kvstore"
)

func TestResolvePlatformSession(t *testing.T) {
	userID := uuid.New()
	got, err := Resolve(context.Background(), Input{SessionUserID: &userID, AuthType: AuthTypeEmail})
	require.NoError(t, err)
	assert.Equal(t, KindPlatform, got.Kind)
	assert.Equal(t, userID.String(), got.ID)
	assert.Nil(t, got.LinkedPlatformID)
}

func TestResolveLineWinsOverPlatformSession(t *testing.T) {
	// LINE-authenticated request that also carries a platform session: the
	// row must stay LINE-keyed, the platform id only becomes the link.
	userID := uuid.New()
	got, err := Resolve(context.Background(), Input{
		SessionUserID: &userID,
		AuthType:      AuthTypeLine,
		LineUserID:    "U1234567890abcdef",
	})
	require.NoError(t, err)
	assert.Equal(t, KindExternal, got.Kind)
	assert.Equal(t, "U1234567890abcdef", got.ID)
	require.NotNil(t, got.LinkedPlatformID)
	assert.Equal(t, userID, *got.LinkedPlatformID)
}

func TestResolveLineFromCachedProfile(t *testing.T) {
	store := kvstore.NewMemoryStore()
	raw, err := sonic.Marshal(LineProfile{LineUserID: "Ucafef00d", DisplayName: "太郎"})
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), LineProfileKey("Ucafef00d"), string(raw), 0))

	got, err := Resolve(context.Background(), Input{
		Session:    store,
		SessionKey: LineProfileKey("Ucafef00d"),
	})
	require.NoError(t, err)
	assert.Equal(t, KindExternal, got.Kind)
	assert.Equal(t, "Ucafef00d", got.ID)
}

func TestResolveNothingIsBlocking(t *testing.T) {
	_, err := Resolve(context.Background(), Input{})
	assert.ErrorIs(t, err, ErrAuthNotCompleted)
}

func TestResolveLineAuthWithoutProfileIsBlocking(t *testing.T) {
	_, err := Resolve(context.Background(), Input{AuthType: AuthTypeLine})
	assert.ErrorIs(t, err, ErrAuthNotCompleted)
}

func TestResolveIsDeterministic(t *testing.T) {
	userID := uuid.New()
	in := Input{SessionUserID: &userID, AuthType: AuthTypeLine, LineUserID: "Uaaa"}
	first, err := Resolve(context.Background(), in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
