package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vikashchaurasiya2005/cab-booking-portal/pkg/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.New("test"))
	go hub.Run()
	return hub
}

func addClient(t *testing.T, hub *Hub, vendorID uint, subscribed bool) *Client {
	t.Helper()
	client := &Client{
		VendorID:   vendorID,
		Subscribed: subscribed,
		Send:       make(chan []byte, 8),
		Hub:        hub,
	}
	before := hub.ConnectedClients()
	hub.register <- client
	waitForClients(t, hub, before+1)
	return client
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ConnectedClients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, have %d", n, hub.ConnectedClients())
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case data := <-c.Send:
		var env Envelope
		assert.NoError(t, json.Unmarshal(data, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("expected an event, got none")
		return Envelope{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("expected no event, got %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyVendorTargetsPrivateChannel(t *testing.T) {
	hub := newTestHub(t)
	owner := addClient(t, hub, 1, true)
	other := addClient(t, hub, 2, true)

	hub.NotifyVendor(1, EventBookingUpdate, map[string]string{"bookingId": "BK-1"})

	env := receive(t, owner)
	assert.Equal(t, EventBookingUpdate, env.Event)
	assertSilent(t, other)
}

func TestNotifyAllVendorsReachesEverySubscribedSession(t *testing.T) {
	hub := newTestHub(t)
	a := addClient(t, hub, 1, true)
	b := addClient(t, hub, 2, true)

	hub.NotifyAllVendors(EventBookingOpenMarket, map[string]string{"bookingId": "BK-2"})

	assert.Equal(t, EventBookingOpenMarket, receive(t, a).Event)
	assert.Equal(t, EventBookingOpenMarket, receive(t, b).Event)
}

// A session that presented no valid credential stays connected but hears
// nothing, not even events addressed to its own vendor id.
func TestUnsubscribedSessionHearsNothing(t *testing.T) {
	hub := newTestHub(t)
	anon := addClient(t, hub, 5, false)

	hub.NotifyVendor(5, EventBookingUpdate, map[string]string{"bookingId": "BK-3"})
	hub.NotifyAllVendors(EventBookingOpenMarket, map[string]string{"bookingId": "BK-3"})

	assertSilent(t, anon)
}

func TestPrivateThenBroadcastOrderPreservedPerSession(t *testing.T) {
	hub := newTestHub(t)
	owner := addClient(t, hub, 1, true)

	hub.NotifyVendor(1, EventBookingUpdate, map[string]string{"bookingId": "BK-4"})
	hub.NotifyAllVendors(EventBookingOpenMarket, map[string]string{"bookingId": "BK-4"})

	assert.Equal(t, EventBookingUpdate, receive(t, owner).Event)
	assert.Equal(t, EventBookingOpenMarket, receive(t, owner).Event)
}

func TestEnvelopeCarriesPayload(t *testing.T) {
	hub := newTestHub(t)
	owner := addClient(t, hub, 9, true)

	hub.NotifyVendor(9, EventBookingDelete, BookingDeleted{ID: 12, BookingID: "BK-12"})

	env := receive(t, owner)
	assert.Equal(t, EventBookingDelete, env.Event)
	data, ok := env.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "BK-12", data["bookingId"])
}
