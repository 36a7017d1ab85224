package cache

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// A lock-step cache for testing interleavings of concurrent callers.
// Every client calls wait() to finish its current tick; the server advances the tick
// once all clients have done so.
type mockCacheServer[T any] struct {
	entries   map[string]entry[T]
	entryLock sync.Mutex

	currentTick       atomic.Int64
	maxTicks          int64
	numClients        int64
	completedThisTick atomic.Int64
}

type mockCacheClient[T any] struct {
	server      *mockCacheServer[T]
	desiredTick int64
}

func (client *mockCacheClient[T]) getOrClaim(key string) hitResult[T] {
	client.server.entryLock.Lock()
	defer client.server.entryLock.Unlock()

	old, ok := client.server.entries[key]
	if ok {
		return hitResult[T]{
			data:    old.data,
			valid:   old.valid,
			claimed: false,
		}
	}

	client.server.entries[key] = entry[T]{valid: false}
	return hitResult[T]{claimed: true}
}

func (client *mockCacheClient[T]) set(key string, data T) {
	client.server.entryLock.Lock()
	defer client.server.entryLock.Unlock()

	client.server.entries[key] = entry[T]{data: data, valid: true}
}

func (client *mockCacheClient[T]) delete(key string) {
	client.server.entryLock.Lock()
	defer client.server.entryLock.Unlock()

	delete(client.server.entries, key)
}

func (client *mockCacheClient[T]) name() string {
	return "mock"
}

func (client *mockCacheClient[T]) tick() int64 {
	return client.server.currentTick.Load()
}

func (client *mockCacheClient[T]) wait() {
	if client.server.isDone() {
		panic("wait() called on a client that is already done")
	}

	client.server.completedThisTick.Add(1)
	client.desiredTick++

	for client.server.currentTick.Load() < client.desiredTick {
		runtime.Gosched()
	}
}

func (client *mockCacheClient[T]) waitUntilDone() {
	for !client.server.isDone() {
		client.wait()
	}
}

func (server *mockCacheServer[T]) isDone() bool {
	return server.currentTick.Load() >= server.maxTicks
}

func (server *mockCacheServer[T]) processTicks() {
	for !server.isDone() {
		if server.completedThisTick.Load() != server.numClients {
			runtime.Gosched()
			continue
		}

		server.completedThisTick.Store(0)
		server.currentTick.Add(1)
	}
}

func newMockCacheServer[T any](numClients int, maxTicks int) (*mockCacheServer[T], []*mockCacheClient[T]) {
	server := &mockCacheServer[T]{
		entries:    make(map[string]entry[T]),
		maxTicks:   int64(maxTicks),
		numClients: int64(numClients),
	}

	clients := make([]*mockCacheClient[T], numClients)
	for i := range numClients {
		clients[i] = &mockCacheClient[T]{server: server}
	}

	return server, clients
}
