package admin

import (
	"context"
	"errors"
	"io"
	"sync"

	"roots-catalog/internal/model"
)

// fakeAPI records calls and answers from the configured functions.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	list   func(keyword string, page int) (*model.ProductPage, error)
	get    func(id string) (*model.Product, error)
	create func() (*model.Product, error)
	update func(id string, u model.ProductUpdate) (*model.Product, error)
	del    func(id string) (string, error)
	upload func(filename string, data []byte) (string, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

var errNotConfigured = errors.New("not configured")

func (f *fakeAPI) ListProducts(ctx context.Context, keyword string, page int) (*model.ProductPage, error) {
	f.record("list")
	if f.list == nil {
		return nil, errNotConfigured
	}
	return f.list(keyword, page)
}

func (f *fakeAPI) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	f.record("get")
	if f.get == nil {
		return nil, errNotConfigured
	}
	return f.get(id)
}

func (f *fakeAPI) CreateProduct(ctx context.Context) (*model.Product, error) {
	f.record("create")
	if f.create == nil {
		return nil, errNotConfigured
	}
	return f.create()
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, u model.ProductUpdate) (*model.Product, error) {
	f.record("update")
	if f.update == nil {
		return nil, errNotConfigured
	}
	return f.update(id, u)
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) (string, error) {
	f.record("delete")
	if f.del == nil {
		return "", errNotConfigured
	}
	return f.del(id)
}

func (f *fakeAPI) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	f.record("upload")
	if f.upload == nil {
		return "", errNotConfigured
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return f.upload(filename, data)
}

// gate holds a fake call until released.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) wait() {
	close(g.started)
	<-g.release
}
