// Package admin holds the behaviour of the catalogue admin screens without any
// rendering: the product edit form and the paginated product list. Both keep
// per-operation state that a front end (here the rootsctl command) reads.
package admin

import (
	"context"
	"errors"
	"io"

	"roots-catalog/internal/model"
)

// ErrSuperseded is returned when a response arrives after a newer request for
// the same operation was issued. Its result has been discarded.
var ErrSuperseded = errors.New("response superseded by a newer request")

// API is the part of the catalogue API the admin screens use.
type API interface {
	ListProducts(ctx context.Context, keyword string, page int) (*model.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, update model.ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (string, error)
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// OpState tracks one asynchronous operation: issued, answered, reset.
type OpState struct {
	Loading bool
	Err     string
	Success bool
}

// Begin marks the operation as in flight and clears the previous outcome.
func (s *OpState) Begin() {
	s.Loading = true
	s.Err = ""
	s.Success = false
}

// Finish records the outcome of the operation.
func (s *OpState) Finish(err error) {
	s.Loading = false
	if err != nil {
		s.Err = err.Error()
		s.Success = false
		return
	}
	s.Err = ""
	s.Success = true
}

// Reset clears the operation state.
func (s *OpState) Reset() {
	*s = OpState{}
}

// sequence hands out request numbers so only the latest response is applied.
type sequence struct {
	last uint64
}

func (s *sequence) next() uint64 {
	s.last++
	return s.last
}

func (s *sequence) latest(n uint64) bool {
	return n == s.last
}
