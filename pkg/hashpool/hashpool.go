// Package hashpool runs bcrypt operations on a fixed pool of worker
// goroutines so CPU-bound hashing never stalls request handling.
package hashpool

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Pool executes hash and compare jobs on a bounded set of workers.
type Pool struct {
	jobs chan func()
	cost int
	wg   sync.WaitGroup
	once sync.Once
}

// New creates a pool with the given number of workers and bcrypt cost.
func New(workers, cost int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	p := &Pool{
		jobs: make(chan func()),
		cost: cost,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Hash produces a bcrypt hash of the plaintext password.
func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	var (
		hash []byte
		err  error
	)
	if submitErr := p.run(ctx, func() {
		hash, err = bcrypt.GenerateFromPassword([]byte(password), p.cost)
	}); submitErr != nil {
		return "", submitErr
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks the plaintext password against a stored bcrypt hash.
// It returns bcrypt.ErrMismatchedHashAndPassword on mismatch.
func (p *Pool) Compare(ctx context.Context, hash, password string) error {
	var err error
	if submitErr := p.run(ctx, func() {
		err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}); submitErr != nil {
		return submitErr
	}
	return err
}

// run submits a job and waits for it to finish. Submission and completion
// both respect context cancellation; a job that already started still runs
// to completion on its worker.
func (p *Pool) run(ctx context.Context, job func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		job()
	}

	select {
	case p.jobs <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
