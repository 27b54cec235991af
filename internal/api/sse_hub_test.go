package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeedHubBroadcastReachesStorefrontClients(t *testing.T) {
	hub := NewFeedHub(zap.NewNop())

	usChan := make(chan FeedEvent, 10)
	euChan := make(chan FeedEvent, 10)
	hub.register <- FeedClient{Storefront: "us", Channel: usChan}
	hub.register <- FeedClient{Storefront: "eu", Channel: euChan}

	require.Eventually(t, func() bool {
		return hub.GetClientCount("us") == 1 && hub.GetClientCount("eu") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(FeedEvent{Storefront: "us", EventType: EventLayoutReloaded})

	select {
	case event := <-usChan:
		assert.Equal(t, EventLayoutReloaded, event.EventType)
		assert.Equal(t, "us", event.Storefront)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("us client never received the event")
	}

	select {
	case event := <-euChan:
		t.Fatalf("eu client should not receive us events, got %s", event.EventType)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFeedHubUnregisterClosesChannel(t *testing.T) {
	hub := NewFeedHub(zap.NewNop())

	clientChan := make(chan FeedEvent, 10)
	hub.register <- FeedClient{Storefront: "default", Channel: clientChan}
	require.Eventually(t, func() bool {
		return hub.GetClientCount("default") == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- FeedClient{Storefront: "default", Channel: clientChan}
	require.Eventually(t, func() bool {
		return hub.GetClientCount("default") == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-clientChan
	assert.False(t, open)
	assert.Empty(t, hub.GetActiveStorefronts())
}
