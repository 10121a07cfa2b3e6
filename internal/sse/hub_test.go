package sse

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesEveryClient(t *testing.T) {
	hub := NewHub(nil, nil)
	a := hub.Register("a", "alice")
	b := hub.Register("b", "")

	hub.Publish("new-entry", []byte(`{"orderNo":"A1"}`))

	for _, client := range []*Client{a, b} {
		select {
		case event := <-client.Events:
			assert.Equal(t, "new-entry", event.Name)
			assert.JSONEq(t, `{"orderNo":"A1"}`, string(event.Data))
		default:
			t.Fatalf("client %s received nothing", client.ID)
		}
	}
}

func TestPublishDoesNotBlockOnFullBuffer(t *testing.T) {
	hub := NewHub(nil, nil)
	slow := hub.Register("slow", "")

	for i := 0; i < clientBuffer+10; i++ {
		hub.Publish("new-entry", []byte(fmt.Sprint(i)))
	}

	assert.Len(t, slow.Events, clientBuffer)
}

func TestUnregisterClosesChannel(t *testing.T) {
	hub := NewHub(nil, nil)
	client := hub.Register("a", "")
	require.Equal(t, 1, hub.Len())

	hub.Unregister("a")
	hub.Unregister("a")

	_, open := <-client.Events
	assert.False(t, open)
	assert.Zero(t, hub.Len())
}

func TestConcurrentRegisterAndPublish(t *testing.T) {
	hub := NewHub(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		id := fmt.Sprintf("c%d", i)
		go func() {
			defer wg.Done()
			hub.Register(id, "")
			hub.Unregister(id)
		}()
		go func() {
			defer wg.Done()
			hub.Publish("new-entry", nil)
		}()
	}
	wg.Wait()

	assert.Zero(t, hub.Len())
}
