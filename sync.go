package consumption

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// AsyncClassifyResult is the outcome of one classify request executed by All
// or Race.
type AsyncClassifyResult struct {
	Result *ClassifyResult
	Error  error
}

// All executes several classify requests concurrently and returns their
// results in request order. Each request resolves its own configuration and
// shares nothing with the others.
func All(ctx context.Context, c *Client, reqs ...ClassifyRequest) []AsyncClassifyResult {
	var wg sync.WaitGroup

	results := make([]AsyncClassifyResult, len(reqs))

	for idx, req := range reqs {
		idx, req := idx, req

		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := req.Do(ctx, c)
			if err != nil {
				results[idx] = AsyncClassifyResult{Error: err}
				return
			}

			results[idx] = AsyncClassifyResult{Result: result}
		}()
	}

	wg.Wait()

	return results
}

// Race executes several classify requests concurrently and returns the first
// one to succeed, or an error once all of them failed.
func Race(ctx context.Context, c *Client, reqs ...ClassifyRequest) AsyncClassifyResult {
	if len(reqs) == 0 {
		return AsyncClassifyResult{Error: errors.New("no classify requests to race")}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan AsyncClassifyResult, len(reqs))

	for _, req := range reqs {
		req := req

		go func() {
			result, err := req.Do(ctx, c)
			if err != nil {
				ch <- AsyncClassifyResult{Error: err}
				return
			}

			ch <- AsyncClassifyResult{Result: result}
		}()
	}

	errored := 0

	for {
		select {
		case <-ctx.Done():
			return AsyncClassifyResult{Error: ctx.Err()}

		case value := <-ch:
			switch value.Error {
			case nil:
				return value

			default:
				errored += 1

				if errored == len(reqs) {
					return AsyncClassifyResult{Error: errors.New("all classify requests failed")}
				}
			}
		}
	}
}
