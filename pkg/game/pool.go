package game

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler reorders a phrase pool in place.
type Shuffler interface {
	Shuffle(phrases []string)
}

// RandShuffler is a Fisher-Yates shuffler backed by math/rand.
// Seeding it with a fixed value makes pool order reproducible.
type RandShuffler struct {
	lock sync.Mutex
	rng  *rand.Rand
}

// NewRandShuffler creates a shuffler seeded with seed.
func NewRandShuffler(seed int64) *RandShuffler {
	return &RandShuffler{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewTimeSeededShuffler creates a shuffler seeded from the wall clock.
func NewTimeSeededShuffler() *RandShuffler {
	return NewRandShuffler(time.Now().UnixNano())
}

// Shuffle permutes phrases uniformly at random.
func (s *RandShuffler) Shuffle(phrases []string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := len(phrases) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		phrases[i], phrases[j] = phrases[j], phrases[i]
	}
}

// buildPool returns a freshly shuffled copy of phrases.
func buildPool(shuffler Shuffler, phrases []string) []string {
	pool := make([]string, len(phrases))
	copy(pool, phrases)
	shuffler.Shuffle(pool)
	return pool
}

// popHead removes the first phrase of pool. phrase is nil when pool is empty.
func popHead(pool []string) (phrase *string, rest []string) {
	if len(pool) == 0 {
		return nil, pool
	}
	head := pool[0]
	return &head, pool[1:]
}

// pushHead puts phrase back in front of every remaining phrase.
func pushHead(pool []string, phrase string) []string {
	return append([]string{phrase}, pool...)
}

// takeConfirmed splits guessed into the phrases named by confirmed and the
// rest, consuming one occurrence per confirmed entry. missing is the first
// confirmed phrase that has no unconsumed occurrence left in guessed.
func takeConfirmed(guessed, confirmed []string) (unconfirmed []string, missing *string) {
	unconfirmed = make([]string, len(guessed))
	copy(unconfirmed, guessed)
	for _, phrase := range confirmed {
		idx := -1
		for i, candidate := range unconfirmed {
			if candidate == phrase {
				idx = i
				break
			}
		}
		if idx < 0 {
			p := phrase
			return nil, &p
		}
		unconfirmed = append(unconfirmed[:idx], unconfirmed[idx+1:]...)
	}
	return unconfirmed, nil
}

// phraseCounts returns the multiset of phrases as a count map.
func phraseCounts(lists ...[]string) map[string]int {
	counts := make(map[string]int)
	for _, list := range lists {
		for _, phrase := range list {
			counts[phrase]++
		}
	}
	return counts
}
