package checkout

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Alphabet without ambiguous characters (0/O, 1/I/L).
const orderNumberAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// NewOrderNumber generates an order number: date prefix plus a random
// 6-character suffix, e.g. ORD-20260901-K4TQ7M. Collisions are vanishingly
// rare; the checkout transaction retries on the unique constraint anyway.
func NewOrderNumber(now time.Time) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), buf)
}
