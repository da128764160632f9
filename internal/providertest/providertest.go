// Package providertest provides an in-memory source.Provider that counts calls.
package providertest

import (
	"context"
	"sync"

	"github.com/cinelink/cinelink/source"
)

// Fake is a scripted provider. Errors listed in the *Errs slices are
// returned by successive calls; once exhausted, calls succeed.
type Fake struct {
	Candidates []*source.Candidate
	Media      *source.Detail

	LoginErrs  []error
	ProbeErrs  []error
	SearchErrs []error
	DetailErrs []error

	mu      sync.Mutex
	Logins  int
	Probes  int
	Queries []string
	Details []string
}

func (f *Fake) Name() string { return "fake" }

// Calls is the total number of provider calls made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Logins + f.Probes + len(f.Queries) + len(f.Details)
}

func (f *Fake) Login(_ context.Context, _ source.Credentials) (*source.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Logins++
	if err := next(&f.LoginErrs); err != nil {
		return nil, err
	}

	return &source.Session{AuthToken: "token", RefreshToken: "refresh"}, nil
}

func (f *Fake) Probe(_ context.Context, _ *source.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Probes++
	return next(&f.ProbeErrs)
}

func (f *Fake) Search(_ context.Context, _ *source.Session, query string) ([]*source.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Queries = append(f.Queries, query)
	if err := next(&f.SearchErrs); err != nil {
		return nil, err
	}
	return f.Candidates, nil
}

func (f *Fake) Detail(_ context.Context, _ *source.Session, id string) (*source.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Details = append(f.Details, id)
	if err := next(&f.DetailErrs); err != nil {
		return nil, err
	}
	return f.Media, nil
}

func next(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}
