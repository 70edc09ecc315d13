package admin

import (
	"context"
	"io"
	"sync"

	"roots-catalog/internal/model"

	"github.com/rs/zerolog"
)

// EditorState is a snapshot of the edit screen.
type EditorState struct {
	ProductID string
	Product   *model.Product
	Form      ProductForm
	Details   OpState
	Update    OpState
	Uploading bool
}

// ProductEditor drives the product edit screen: load details into a form,
// upload an image, submit the whole form.
type ProductEditor struct {
	api    API
	logger zerolog.Logger

	mu        sync.Mutex
	productID string
	product   *model.Product
	form      ProductForm
	details   OpState
	update    OpState
	uploading bool

	detailsSeq sequence
	updateSeq  sequence
	uploadSeq  sequence
}

// NewProductEditor creates an editor backed by api.
func NewProductEditor(api API, logger zerolog.Logger) *ProductEditor {
	return &ProductEditor{
		api:    api,
		logger: logger.With().Str("component", "product-editor").Logger(),
	}
}

// Load opens the editor on product id. Details are fetched only when no
// product is loaded or the loaded one is a different product; either way the
// form is then filled from the loaded product. A finished update is reset.
func (e *ProductEditor) Load(ctx context.Context, id string) error {
	e.mu.Lock()
	e.productID = id
	if e.update.Success {
		e.update.Reset()
	}

	if e.product != nil && e.product.ID == id {
		// Any fetch still in flight is for another product.
		e.detailsSeq.next()
		e.details.Reset()
		e.form = FormFromProduct(e.product)
		e.mu.Unlock()
		return nil
	}

	seq := e.detailsSeq.next()
	e.details.Begin()
	e.mu.Unlock()

	product, err := e.api.GetProduct(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.detailsSeq.latest(seq) {
		return ErrSuperseded
	}

	e.details.Finish(err)
	if err != nil {
		e.logger.Warn().Err(err).Str("product_id", id).Msg("failed to load product details")
		return err
	}

	e.product = product
	e.form = FormFromProduct(product)
	return nil
}

// Form returns a copy of the form.
func (e *ProductEditor) Form() ProductForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// Edit applies fn to the form.
func (e *ProductEditor) Edit(fn func(f *ProductForm) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	f := e.form
	if err := fn(&f); err != nil {
		return err
	}
	e.form = f
	return nil
}

// UploadImage uploads r and, on success, puts the returned reference in the
// form's image field. A failed upload leaves the image unchanged.
func (e *ProductEditor) UploadImage(ctx context.Context, filename string, r io.Reader) error {
	e.mu.Lock()
	seq := e.uploadSeq.next()
	e.uploading = true
	e.mu.Unlock()

	ref, err := e.api.UploadImage(ctx, filename, r)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.uploadSeq.latest(seq) {
		return ErrSuperseded
	}

	e.uploading = false
	if err != nil {
		e.logger.Error().Err(err).Str("filename", filename).Msg("image upload failed")
		return err
	}

	e.form.Image = ref
	return nil
}

// Submit sends the whole form as an update of the loaded product. On success
// the returned product becomes the loaded one and Update.Success is set until Done.
func (e *ProductEditor) Submit(ctx context.Context) error {
	e.mu.Lock()
	id := e.productID
	update := e.form.ToUpdate()
	seq := e.updateSeq.next()
	e.update.Begin()
	e.mu.Unlock()

	product, err := e.api.UpdateProduct(ctx, id, update)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.updateSeq.latest(seq) {
		return ErrSuperseded
	}

	e.update.Finish(err)
	if err != nil {
		e.logger.Warn().Err(err).Str("product_id", id).Msg("product update failed")
		return err
	}

	e.product = product
	return nil
}

// Done resets the update state after a successful submit has been acted on.
func (e *ProductEditor) Done() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.update.Reset()
}

// State returns a snapshot of the editor.
func (e *ProductEditor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	var product *model.Product
	if e.product != nil {
		p := *e.product
		product = &p
	}

	return EditorState{
		ProductID: e.productID,
		Product:   product,
		Form:      e.form,
		Details:   e.details,
		Update:    e.update,
		Uploading: e.uploading,
	}
}
