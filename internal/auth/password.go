package auth

import "golang.org/x/crypto/bcrypt"

// Hasher produces and verifies bcrypt digests. Cost is fixed at
// construction; raising it only affects digests created afterwards,
// existing ones keep verifying.
type Hasher struct {
	cost int
}

func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// HashPassword hashes a plaintext password using bcrypt.
func (h Hasher) HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.cost)
	return string(b), err
}

// CheckPassword compares a bcrypt hash with a candidate plaintext password.
func (h Hasher) CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
