package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLocker_SerializesSameKey(t *testing.T) {
	locks := newKeyLocker()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("a@x.com")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Zero(t, locks.size())
}

func TestKeyLocker_DifferentKeysDoNotContend(t *testing.T) {
	locks := newKeyLocker()

	unlockA := locks.Lock("a@x.com")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b@x.com")
		unlock()
		close(done)
	}()

	<-done
	assert.Equal(t, 1, locks.size())
}
