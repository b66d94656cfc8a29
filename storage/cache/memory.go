package cachestore

import "sync"

type (
	memoryStore struct {
		caches map[string]*memoryCache
		mutex  sync.RWMutex
	}

	memoryCache struct {
		name    string
		entries map[string]Response
		mutex   sync.RWMutex
	}
)

var (
	_ Store = (*memoryStore)(nil)
	_ Cache = (*memoryCache)(nil)
)

func NewMemoryStore() Store {
	return &memoryStore{caches: make(map[string]*memoryCache)}
}

func (s *memoryStore) Open(name string) (Cache, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if c, ok := s.caches[name]; ok {
		return c, nil
	}
	c := &memoryCache{name: name, entries: make(map[string]Response)}
	s.caches[name] = c
	return c, nil
}

func (s *memoryStore) Names() ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	names := make([]string, 0, len(s.caches))
	for name := range s.caches {
		names = append(names, name)
	}
	return names, nil
}

func (s *memoryStore) Delete(name string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.caches[name]; !ok {
		return false, nil
	}
	delete(s.caches, name)
	return true, nil
}

func (c *memoryCache) Name() string {
	return c.name
}

func (c *memoryCache) Put(key string, resp Response) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[key] = Clone(resp)
	return nil
}

func (c *memoryCache) Match(key string) (Response, bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	resp, ok := c.entries[key]
	if !ok {
		return Response{}, false, nil
	}
	return Clone(resp), true, nil
}

func (c *memoryCache) Keys() ([]string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys, nil
}
