package admin

import (
	"context"
	"errors"
	"sync"

	"roots-catalog/internal/model"

	"github.com/rs/zerolog"
)

// PageLink is one entry of the pagination bar.
type PageLink struct {
	Number int
	Active bool
}

// ListerState is a snapshot of the list screen.
type ListerState struct {
	Keyword  string
	Products []model.Product
	Page     int
	Pages    int
	List     OpState
	Create   OpState
	Delete   OpState
}

// ProductLister drives the product list screen: load a page, create a sample
// product, delete with confirmation.
type ProductLister struct {
	api    API
	logger zerolog.Logger

	mu       sync.Mutex
	keyword  string
	page     int
	products []model.Product
	pages    int
	list     OpState
	create   OpState
	del      OpState

	listSeq   sequence
	createSeq sequence
	deleteSeq sequence
}

// NewProductLister creates a lister backed by api.
func NewProductLister(api API, logger zerolog.Logger) *ProductLister {
	return &ProductLister{
		api:    api,
		logger: logger.With().Str("component", "product-lister").Logger(),
		page:   1,
	}
}

// SetKeyword filters subsequent loads by product name.
func (l *ProductLister) SetKeyword(keyword string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keyword = keyword
}

// Open shows page, resetting any finished create.
func (l *ProductLister) Open(ctx context.Context, page int) error {
	l.mu.Lock()
	l.create.Reset()
	l.mu.Unlock()

	return l.load(ctx, page)
}

func (l *ProductLister) load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	l.mu.Lock()
	keyword := l.keyword
	seq := l.listSeq.next()
	l.list.Begin()
	l.mu.Unlock()

	result, err := l.api.ListProducts(ctx, keyword, page)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.listSeq.latest(seq) {
		return ErrSuperseded
	}

	l.list.Finish(err)
	if err != nil {
		l.logger.Warn().Err(err).Int("page", page).Msg("failed to list products")
		return err
	}

	l.products = result.Products
	l.page = result.Page
	l.pages = result.Pages
	return nil
}

// Create asks the server for a new sample product and returns its ID so the
// caller can open it in the editor.
func (l *ProductLister) Create(ctx context.Context) (string, error) {
	l.mu.Lock()
	seq := l.createSeq.next()
	l.create.Begin()
	l.mu.Unlock()

	product, err := l.api.CreateProduct(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.createSeq.latest(seq) {
		return "", ErrSuperseded
	}

	l.create.Finish(err)
	if err != nil {
		l.logger.Warn().Err(err).Msg("failed to create product")
		return "", err
	}

	return product.ID, nil
}

// Delete removes product id if confirm returns true, then reloads the current
// page. It reports whether a delete was attempted. A failed reload is not a
// failed delete; it is recorded in the list state only.
func (l *ProductLister) Delete(ctx context.Context, id string, confirm func() bool) (bool, error) {
	if confirm != nil && !confirm() {
		return false, nil
	}

	l.mu.Lock()
	seq := l.deleteSeq.next()
	l.del.Begin()
	l.mu.Unlock()

	_, err := l.api.DeleteProduct(ctx, id)

	l.mu.Lock()
	if !l.deleteSeq.latest(seq) {
		l.mu.Unlock()
		return true, ErrSuperseded
	}
	l.del.Finish(err)
	page := l.page
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn().Err(err).Str("product_id", id).Msg("failed to delete product")
		return true, err
	}

	// The product is gone either way; a failed reload shows in the list state.
	if err := l.load(ctx, page); err != nil && !errors.Is(err, ErrSuperseded) {
		l.logger.Warn().Err(err).Str("product_id", id).Msg("failed to reload products after delete")
	}
	return true, nil
}

// Pagination returns links 1..pages with the current page marked. There is no
// pagination bar for a single page.
func (l *ProductLister) Pagination() []PageLink {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pages <= 1 {
		return nil
	}

	links := make([]PageLink, l.pages)
	for i := range links {
		links[i] = PageLink{Number: i + 1, Active: i+1 == l.page}
	}
	return links
}

// State returns a snapshot of the lister.
func (l *ProductLister) State() ListerState {
	l.mu.Lock()
	defer l.mu.Unlock()

	products := make([]model.Product, len(l.products))
	copy(products, l.products)

	return ListerState{
		Keyword:  l.keyword,
		Products: products,
		Page:     l.page,
		Pages:    l.pages,
		List:     l.list,
		Create:   l.create,
		Delete:   l.del,
	}
}
