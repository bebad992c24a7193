package presentation

import (
	"sync"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/xwordclient/game"
)

// Broadcaster fans session views out to subscribers. It is a game.Observer;
// Update never blocks, so it is safe to call with the session lock held.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan game.View]struct{}
	// last is the fingerprint of current, the last published view.
	last    uint64
	current *game.View
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan game.View]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its view channel. A
// subscriber joining after the first publish starts with the current view.
func (b *Broadcaster) Subscribe() chan game.View {
	ch := make(chan game.View, 10)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	if b.current != nil {
		ch <- *b.current
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan game.View) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Close unsubscribes everyone.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Update(v game.View) {
	b.Publish(v)
}

// Publish delivers a view to all subscribers unless it is identical to the
// last one published.
func (b *Broadcaster) Publish(v game.View) {
	fp, err := Fingerprint(v)
	if err != nil {
		log.Error().Err(err).Msg("fingerprint")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil && fp == b.last {
		return
	}
	b.last = fp
	b.current = &v
	for ch := range b.subs {
		select {
		case ch <- v:
		default:
			// Drop if the subscriber is lagging; next view will catch it up.
		}
	}
}

// Fingerprint hashes the canonical encoding of a view.
func Fingerprint(v game.View) (uint64, error) {
	bts, err := yaml.Marshal(v)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(bts), nil
}

// DumpYAML renders a view as YAML.
func DumpYAML(v game.View) (string, error) {
	bts, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(bts), nil
}
