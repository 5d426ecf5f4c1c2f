package mock

import (
	"context"

	tccs "github.com/Trantu1102/NB-TCCS"
)

var _ tccs.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of tccs.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *tccs.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *tccs.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
