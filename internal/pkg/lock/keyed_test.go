package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	const iterations = 500
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := km.Lock("worker@example.com")
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4*iterations, counter)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlockA := km.Lock("a@example.com")
	defer unlockA()

	// A held lock on one key must not block another key
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b@example.com")
		unlockB()
		close(done)
	}()
	<-done
}

func TestKeyedMutex_CleansUpReleasedKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock("a@example.com")
	assert.Equal(t, 1, km.Len())
	unlock()
	assert.Equal(t, 0, km.Len())
}
