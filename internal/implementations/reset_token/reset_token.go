package resettoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"cvmatch/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

const rawTokenBytes = 32

// Generator produces 256-bit random tokens encoded as lowercase hex.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetToken() user.RawResetToken {
	b := make([]byte, rawTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return user.RawResetToken(hex.EncodeToString(b))
}

// BcryptHasher hashes raw reset tokens with bcrypt. The salt baked into each
// bcrypt hash makes equal tokens hash differently, so lookups must go through
// ValidateToken rather than comparing hashes.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) HashToken(token user.RawResetToken) (hash user.ResetTokenHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(token), h.cost)
	if err != nil {
		return hash, err
	}
	return user.ResetTokenHash(bcryptHash), nil
}

func (h *BcryptHasher) ValidateToken(token user.RawResetToken, hash user.ResetTokenHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
	return err == nil
}
