package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesOnlyMatchingCollection(t *testing.T) {
	bus := NewBus()

	var cocktailEvents, categoryEvents []Event
	bus.Subscribe("cocktails", func(e Event) { cocktailEvents = append(cocktailEvents, e) })
	bus.Subscribe("categories", func(e Event) { categoryEvents = append(categoryEvents, e) })

	bus.Publish(Event{Collection: "cocktails", Kind: KindPatched, RecordID: "negroni"})

	assert.Len(t, cocktailEvents, 1)
	assert.Equal(t, KindPatched, cocktailEvents[0].Kind)
	assert.Equal(t, "negroni", cocktailEvents[0].RecordID)
	assert.Empty(t, categoryEvents)
}

func TestPublishIsSynchronous(t *testing.T) {
	bus := NewBus()

	delivered := false
	bus.Subscribe("ingredients", func(Event) { delivered = true })

	bus.Publish(Event{Collection: "ingredients", Kind: KindInvalidated})
	assert.True(t, delivered, "listener must run before Publish returns")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	count := 0
	unsubscribe := bus.Subscribe("cocktails", func(Event) { count++ })

	bus.Publish(Event{Collection: "cocktails", Kind: KindRefreshed})
	unsubscribe()
	bus.Publish(Event{Collection: "cocktails", Kind: KindRefreshed})

	assert.Equal(t, 1, count)
}

func TestMultipleListeners(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.Subscribe("cocktails", func(Event) { count++ })
	bus.Subscribe("cocktails", func(Event) { count++ })

	bus.Publish(Event{Collection: "cocktails", Kind: KindInvalidated})
	assert.Equal(t, 2, count)
}
