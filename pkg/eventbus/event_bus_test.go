package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/pkg/eventbus"
)

type createdEvent struct {
	Name string
}

type otherEvent struct{}

func newBus() eventbus.EventBus {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(log)
}

func TestPublish_DeliversToMatchingSubscriber(t *testing.T) {
	bus := newBus()

	var got []createdEvent
	bus.Subscribe(func(e createdEvent) {
		got = append(got, e)
	})
	bus.Subscribe(func(e otherEvent) {
		t.Fatal("subscriber with wrong signature must not be called")
	})

	bus.Publish(createdEvent{Name: "a"})
	bus.Publish(createdEvent{Name: "b"})

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}

func TestPublish_RecoversFromPanickingHandler(t *testing.T) {
	bus := newBus()

	called := false
	bus.Subscribe(func(e createdEvent) {
		panic("boom")
	})
	bus.Subscribe(func(e createdEvent) {
		called = true
	})

	assert.NotPanics(t, func() {
		bus.Publish(createdEvent{})
	})
	assert.True(t, called)
}

func TestUnsubscribe(t *testing.T) {
	bus := newBus()

	calls := 0
	handler := func(e createdEvent) {
		calls++
	}
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Publish(createdEvent{})
	bus.Unsubscribe(handler)
	bus.Publish(createdEvent{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestSubscribe_RejectsNonFunc(t *testing.T) {
	bus := newBus()
	assert.Panics(t, func() {
		bus.Subscribe("not a func")
	})
}
