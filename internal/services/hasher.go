package services

import (
	"context"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// BcryptHasher hashes and verifies passwords off the calling goroutine.
// At most maxConcurrent bcrypt operations run at once; callers waiting for a
// slot or a result give up when their context is done.
type BcryptHasher struct {
	cost  int
	sem   *semaphore.Weighted
	decoy []byte
}

// NewBcryptHasher creates a hasher with the given cost and concurrency limit.
func NewBcryptHasher(cost int, maxConcurrent int64) (*BcryptHasher, error) {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	decoy, err := bcrypt.GenerateFromPassword(secret, cost)
	if err != nil {
		return nil, err
	}

	return &BcryptHasher{
		cost:  cost,
		sem:   semaphore.NewWeighted(maxConcurrent),
		decoy: decoy,
	}, nil
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// bcryptInput returns the bytes of password that bcrypt sees. Anything past
// the first 72 bytes is ignored, both when hashing and when comparing.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// Hash returns the bcrypt hash of password.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	hash, err := offload(ctx, h.sem, func() ([]byte, error) {
		return bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	})
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether password matches hash. An empty hash is compared
// against an internal decoy so unknown accounts cost the same as known ones;
// the result is then always false.
func (h *BcryptHasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	target := []byte(hash)
	if hash == "" {
		target = h.decoy
	}

	_, err := offload(ctx, h.sem, func() ([]byte, error) {
		return nil, bcrypt.CompareHashAndPassword(target, bcryptInput(password))
	})
	switch {
	case err == nil:
		return hash != "", nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

type hashResult struct {
	out []byte
	err error
}

func offload(ctx context.Context, sem *semaphore.Weighted, fn func() ([]byte, error)) ([]byte, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	done := make(chan hashResult, 1)
	go func() {
		defer sem.Release(1)
		out, err := fn()
		done <- hashResult{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.out, res.err
	}
}
