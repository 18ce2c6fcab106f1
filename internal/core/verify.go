package core

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aura-labs/aura-api/internal/store"
)

// Verifier decides a document's verification outcome. The demo ships a random
// strategy; a real algorithm can replace it without touching the handlers.
type Verifier interface {
	Verify(doc *store.Document) store.Verification
}

// RandomVerifier passes roughly 80% of documents with a random score.
type RandomVerifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomVerifier() *RandomVerifier {
	return &RandomVerifier{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (v *RandomVerifier) Verify(_ *store.Document) store.Verification {
	v.mu.Lock()
	defer v.mu.Unlock()

	result := store.Verification{
		Verified:  v.rng.Float64() > 0.2,
		Score:     v.rng.Intn(100),
		Issues:    []string{},
		Timestamp: time.Now(),
	}
	if !result.Verified {
		result.Issues = append(result.Issues, "Missing required information")
	}
	return result
}
