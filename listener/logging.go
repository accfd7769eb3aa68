package listener

import "log/slog"

// Logging writes one structured log line per cache event. Useful for
// debugging and demos; behind NewAsync for anything latency-sensitive.
type Logging[K comparable, V any] struct {
	log  *slog.Logger
	name string
}

// NewLogging returns a listener logging through log (nil means
// slog.Default()) with a "cache" attribute of name on every record.
func NewLogging[K comparable, V any](log *slog.Logger, name string) *Logging[K, V] {
	if log == nil {
		log = slog.Default()
	}
	return &Logging[K, V]{log: log, name: name}
}

func (l *Logging[K, V]) OnHit(key K) {
	l.log.Info("cache hit", "cache", l.name, "key", key)
}

func (l *Logging[K, V]) OnMiss(key K) {
	l.log.Info("cache miss", "cache", l.name, "key", key)
}

func (l *Logging[K, V]) OnInsert(key K, value V) {
	l.log.Info("cache insert", "cache", l.name, "key", key, "value", value)
}

func (l *Logging[K, V]) OnUpdate(key K, oldValue, newValue V) {
	l.log.Info("cache update", "cache", l.name, "key", key, "old", oldValue, "new", newValue)
}

func (l *Logging[K, V]) OnEvict(key K, value V) {
	l.log.Info("cache evict", "cache", l.name, "key", key, "value", value)
}

func (l *Logging[K, V]) OnRemove(key K) {
	l.log.Info("cache remove", "cache", l.name, "key", key)
}

func (l *Logging[K, V]) OnClear(count int) {
	l.log.Info("cache clear", "cache", l.name, "count", count)
}
