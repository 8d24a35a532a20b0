package crumb

import "sync"

var (
	registry   = make(map[Settings]Codec)
	registryMu sync.RWMutex
)

// Use returns a cached codec or builds a new one.
// The codec is cached by its settings; missing fields take their defaults.
func Use(settings Settings) (Codec, error) {
	key := settings.withDefaults()

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached, nil
	}

	c, err := NewCodec(key)
	if err != nil {
		return nil, err
	}

	registry[key] = c
	return c, nil
}

// Reset clears the codec registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[Settings]Codec)
}
