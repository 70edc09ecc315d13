package admin

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"roots-catalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogueAPI serves a fixed number of products three to a page.
func catalogueAPI(total int) *fakeAPI {
	api := &fakeAPI{}
	products := make([]model.Product, total)
	for i := range products {
		products[i] = *testProduct(string(rune('a'+i)), "Plant "+string(rune('A'+i)))
	}

	api.list = func(keyword string, page int) (*model.ProductPage, error) {
		var matched []model.Product
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
				matched = append(matched, p)
			}
		}
		start := (page - 1) * 3
		end := min(start+3, len(matched))
		if start > len(matched) {
			start = len(matched)
		}
		return &model.ProductPage{
			Products: matched[start:end],
			Page:     page,
			Pages:    model.PageCount(len(matched), 3),
		}, nil
	}
	api.create = func() (*model.Product, error) {
		p := testProduct("new", "Sample name")
		products = append(products, *p)
		return p, nil
	}
	api.del = func(id string) (string, error) {
		for i, p := range products {
			if p.ID == id {
				products = append(products[:i], products[i+1:]...)
				return "Product removed", nil
			}
		}
		return "", errors.New("Product not found")
	}
	return api
}

func TestProductLister_Open(t *testing.T) {
	lister := NewProductLister(catalogueAPI(7), zerolog.Nop())

	require.NoError(t, lister.Open(context.Background(), 2))

	state := lister.State()
	assert.True(t, state.List.Success)
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, 3, state.Pages)
	require.Len(t, state.Products, 3)
	assert.Equal(t, "d", state.Products[0].ID)

	assert.Equal(t, []PageLink{
		{Number: 1},
		{Number: 2, Active: true},
		{Number: 3},
	}, lister.Pagination())
}

func TestProductLister_SinglePageHasNoPagination(t *testing.T) {
	lister := NewProductLister(catalogueAPI(2), zerolog.Nop())

	require.NoError(t, lister.Open(context.Background(), 1))
	assert.Nil(t, lister.Pagination())
}

func TestProductLister_Keyword(t *testing.T) {
	lister := NewProductLister(catalogueAPI(7), zerolog.Nop())
	lister.SetKeyword("plant c")

	require.NoError(t, lister.Open(context.Background(), 0))

	state := lister.State()
	assert.Equal(t, "plant c", state.Keyword)
	assert.Equal(t, 1, state.Page)
	require.Len(t, state.Products, 1)
	assert.Equal(t, "c", state.Products[0].ID)
}

func TestProductLister_Create(t *testing.T) {
	ctx := context.Background()
	lister := NewProductLister(catalogueAPI(1), zerolog.Nop())

	id, err := lister.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", id)
	assert.True(t, lister.State().Create.Success)

	// Returning to the list resets the create state.
	require.NoError(t, lister.Open(ctx, 1))
	assert.Equal(t, OpState{}, lister.State().Create)
	assert.Len(t, lister.State().Products, 2)
}

func TestProductLister_CreateError(t *testing.T) {
	api := &fakeAPI{create: func() (*model.Product, error) { return nil, errors.New("Not authorised") }}
	lister := NewProductLister(api, zerolog.Nop())

	_, err := lister.Create(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Not authorised", lister.State().Create.Err)
}

func TestProductLister_Delete(t *testing.T) {
	ctx := context.Background()
	api := catalogueAPI(4)
	lister := NewProductLister(api, zerolog.Nop())
	require.NoError(t, lister.Open(ctx, 2))
	require.Len(t, lister.State().Products, 1)

	// Declined confirmation does nothing.
	attempted, err := lister.Delete(ctx, "d", func() bool { return false })
	require.NoError(t, err)
	assert.False(t, attempted)
	assert.Equal(t, 0, api.count("delete"))

	attempted, err = lister.Delete(ctx, "d", func() bool { return true })
	require.NoError(t, err)
	assert.True(t, attempted)

	state := lister.State()
	assert.True(t, state.Delete.Success)
	assert.Equal(t, 2, api.count("list"), "the current page is reloaded after a delete")
	assert.Empty(t, state.Products)
	assert.Equal(t, 1, state.Pages)

	_, err = lister.Delete(ctx, "zzz", func() bool { return true })
	require.Error(t, err)
	assert.Equal(t, "Product not found", lister.State().Delete.Err)
}

func TestProductLister_ListError(t *testing.T) {
	api := &fakeAPI{list: func(string, int) (*model.ProductPage, error) { return nil, errors.New("connection refused") }}
	lister := NewProductLister(api, zerolog.Nop())

	require.Error(t, lister.Open(context.Background(), 1))
	state := lister.State()
	assert.Equal(t, "connection refused", state.List.Err)
	assert.False(t, state.List.Loading)
}

func TestWriteTable(t *testing.T) {
	products := []model.Product{
		{ID: "a1", Name: "Tea Rose", Price: decimal.RequireFromString("12.5"), Type: model.PlantRose, Flower: "Pink"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, products))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "NAME", "PRICE", "TYPE", "FLOWER"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "Tea Rose")
	assert.Contains(t, lines[1], "12.50")
	assert.Contains(t, lines[1], "Rose")
}

func TestWriteCSV(t *testing.T) {
	products := []model.Product{
		{ID: "a1", Name: "Tea Rose", Image: "/uploads/rose.png", Description: "Fragrant, repeat flowering", Type: model.PlantRose, Flower: "Pink", Price: decimal.RequireFromString("12.5"), CountInStock: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, products))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,image,description,type,flower,price,count_in_stock", lines[0])
	assert.Equal(t, `a1,Tea Rose,/uploads/rose.png,"Fragrant, repeat flowering",Rose,Pink,12.5,3`, lines[1])
}

func TestWritePagination(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePagination(&buf, []PageLink{{Number: 1}, {Number: 2, Active: true}}))
	assert.Equal(t, "1 [2]\n", buf.String())

	buf.Reset()
	require.NoError(t, WritePagination(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestProductLister_StaleListIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := catalogueAPI(7)
	pages := api.list
	gates := map[int]*gate{1: newGate(), 2: newGate()}
	api.list = func(keyword string, page int) (*model.ProductPage, error) {
		gates[page].wait()
		return pages(keyword, page)
	}
	lister := NewProductLister(api, zerolog.Nop())

	errOne := make(chan error, 1)
	go func() { errOne <- lister.Open(ctx, 1) }()
	<-gates[1].started

	errTwo := make(chan error, 1)
	go func() { errTwo <- lister.Open(ctx, 2) }()
	<-gates[2].started

	close(gates[1].release)
	assert.ErrorIs(t, <-errOne, ErrSuperseded)
	state := lister.State()
	assert.True(t, state.List.Loading)
	assert.Empty(t, state.Products)

	close(gates[2].release)
	require.NoError(t, <-errTwo)
	state = lister.State()
	assert.False(t, state.List.Loading)
	assert.Equal(t, 2, state.Page)
	require.Len(t, state.Products, 3)
	assert.Equal(t, "d", state.Products[0].ID)
}

func TestProductLister_StaleCreateIsDiscarded(t *testing.T) {
	ctx := context.Background()
	slow := newGate()

	calls := 0
	api := &fakeAPI{
		create: func() (*model.Product, error) {
			calls++
			if calls == 1 {
				slow.wait()
				return testProduct("first", "Sample name"), nil
			}
			return testProduct("second", "Sample name"), nil
		},
	}
	lister := NewProductLister(api, zerolog.Nop())

	type result struct {
		id  string
		err error
	}
	stale := make(chan result, 1)
	go func() {
		id, err := lister.Create(ctx)
		stale <- result{id, err}
	}()
	<-slow.started

	id, err := lister.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", id)

	close(slow.release)
	got := <-stale
	assert.ErrorIs(t, got.err, ErrSuperseded)
	assert.Empty(t, got.id)

	state := lister.State()
	assert.True(t, state.Create.Success)
	assert.False(t, state.Create.Loading)
}

func TestProductLister_StaleDeleteIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := catalogueAPI(4)
	remove := api.del
	slow := newGate()
	api.del = func(id string) (string, error) {
		if id == "a" {
			slow.wait()
			return "", errors.New("connection reset")
		}
		return remove(id)
	}
	lister := NewProductLister(api, zerolog.Nop())
	require.NoError(t, lister.Open(ctx, 1))

	type result struct {
		attempted bool
		err       error
	}
	stale := make(chan result, 1)
	go func() {
		attempted, err := lister.Delete(ctx, "a", nil)
		stale <- result{attempted, err}
	}()
	<-slow.started

	attempted, err := lister.Delete(ctx, "b", nil)
	require.NoError(t, err)
	assert.True(t, attempted)

	close(slow.release)
	got := <-stale
	assert.True(t, got.attempted)
	assert.ErrorIs(t, got.err, ErrSuperseded)

	state := lister.State()
	assert.True(t, state.Delete.Success, "the older failure does not overwrite the newer success")
	assert.Empty(t, state.Delete.Err)
	assert.False(t, state.Delete.Loading)
}

func TestProductLister_DeleteSucceedsWhenReloadFails(t *testing.T) {
	api := &fakeAPI{
		del:  func(id string) (string, error) { return "Product removed", nil },
		list: func(string, int) (*model.ProductPage, error) { return nil, errors.New("connection refused") },
	}
	lister := NewProductLister(api, zerolog.Nop())

	attempted, err := lister.Delete(context.Background(), "a", func() bool { return true })
	require.NoError(t, err)
	assert.True(t, attempted)

	state := lister.State()
	assert.True(t, state.Delete.Success)
	assert.Equal(t, "connection refused", state.List.Err)
}
