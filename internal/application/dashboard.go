package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdidvp/invdash/internal/domain"
	"github.com/rs/zerolog"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

// ErrNoForm is returned by Submit when neither the add nor the edit modal is open.
var ErrNoForm = errors.New("no product form is open")

const deleteConfirmPrompt = "Are you sure you want to delete this product?"

// ViewState is the top-level render branch of the dashboard.
type ViewState int

const (
	StateLoading ViewState = iota
	StateError
	StateEmpty
	StateRows
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "loaded-empty"
	default:
		return "loaded-with-rows"
	}
}

// Modal identifies which product form is open.
type Modal int

const (
	ModalNone Modal = iota
	ModalAdd
	ModalEdit
)

// Dashboard is the inventory view-model. It owns the product list, the form draft
// and the notification, and is driven from a single event loop; it is not safe for
// concurrent use.
type Dashboard struct {
	gateway  domain.ProductGateway
	confirm  domain.Confirmer
	notifier *domain.Notifier
	logger   zerolog.Logger

	products []domain.Product
	loading  bool
	errMsg   string
	modal    Modal
	draft    domain.Draft
}

func NewDashboard(
	gateway domain.ProductGateway,
	confirm domain.Confirmer,
	notifier *domain.Notifier,
	logger zerolog.Logger,
) *Dashboard {
	return &Dashboard{
		gateway:  gateway,
		confirm:  confirm,
		notifier: notifier,
		logger:   logger.With().Str("component", "dashboard").Logger(),
		loading:  true,
		draft:    domain.NewAddDraft(),
	}
}

// Mount performs the initial load.
func (d *Dashboard) Mount(ctx context.Context) error { return d.List(ctx) }

// Retry reloads after a failed list.
func (d *Dashboard) Retry(ctx context.Context) error { return d.List(ctx) }

// List fetches all products and replaces the in-memory collection.
func (d *Dashboard) List(ctx context.Context) error {
	d.loading = true
	defer func() { d.loading = false }()

	products, err := d.gateway.List(ctx)
	if err != nil {
		d.logger.Debug().Err(err).Msg("list failed")
		d.errMsg = "Error loading products: " + err.Error()
		d.products = nil
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}
	d.products = products
	d.errMsg = ""
	return nil
}

func (d *Dashboard) State() ViewState {
	switch {
	case d.loading:
		return StateLoading
	case d.errMsg != "":
		return StateError
	case len(d.products) == 0:
		return StateEmpty
	default:
		return StateRows
	}
}

// Products returns a copy of the current collection.
func (d *Dashboard) Products() []domain.Product {
	out := make([]domain.Product, len(d.products))
	copy(out, d.products)
	return out
}

// Lookup finds a product by its row key: the backend id, or "#<row>" for a
// product that has none.
func (d *Dashboard) Lookup(key string) (domain.Product, bool) {
	for i, p := range d.products {
		if p.Key(i) == key {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (d *Dashboard) Error() string { return d.errMsg }

func (d *Dashboard) Modal() Modal { return d.modal }

func (d *Dashboard) Draft() domain.Draft { return d.draft }

func (d *Dashboard) Notification() *domain.Notification { return d.notifier.Current() }

// Editing returns the id of the product under edit.
func (d *Dashboard) Editing() (domain.ProductID, bool) {
	if d.modal != ModalEdit {
		return domain.ProductID{}, false
	}
	return d.draft.Mode().OriginalID, true
}

// OpenAdd opens the add modal with an empty draft.
func (d *Dashboard) OpenAdd() {
	d.draft = domain.NewAddDraft()
	d.modal = ModalAdd
}

// OpenEdit copies the product into an edit draft and opens the edit modal.
func (d *Dashboard) OpenEdit(p domain.Product) {
	d.draft = domain.DraftFromProduct(p)
	d.modal = ModalEdit
}

func (d *Dashboard) SetField(field, value string) error {
	return d.draft.Set(field, value)
}

// Cancel closes the open modal and discards the draft.
func (d *Dashboard) Cancel() {
	d.modal = ModalNone
	d.draft = domain.NewAddDraft()
}

// Submit validates the draft and sends it as a create or an update depending on
// the draft's mode. Validation failures never reach the network.
func (d *Dashboard) Submit(ctx context.Context) error {
	if d.modal == ModalNone {
		return ErrNoForm
	}

	sub, err := d.draft.Parse()
	if err != nil {
		d.notifier.Show(err.Error(), domain.NotifyError)
		return err
	}

	mode := d.draft.Mode()
	verb, done := "adding", "Product added successfully!"
	send := d.gateway.Create
	if mode.Kind == domain.FormEdit {
		verb, done = "updating", "Product updated successfully!"
		send = d.gateway.Update
	}

	if err := send(ctx, sub); err != nil {
		d.reportFailure(verb, err)
		return err
	}

	_ = d.List(ctx) // list failures are shown through the error state
	d.notifier.Show(done, domain.NotifySuccess)
	d.Cancel()
	return nil
}

// Delete asks for confirmation and deletes the product. The row stays in the list
// until the following reload.
func (d *Dashboard) Delete(ctx context.Context, p domain.Product) error {
	if !d.confirm.Confirm(deleteConfirmPrompt) {
		return ErrCancelled
	}
	if err := d.gateway.Delete(ctx, p.ID); err != nil {
		d.reportFailure("deleting", err)
		return err
	}
	_ = d.List(ctx)
	d.notifier.Show("Product deleted successfully!", domain.NotifySuccess)
	return nil
}

// reportFailure shows an error notification for a failed mutation. Unauthorized
// responses are left to the HTTP adapter, which already sent the user to login.
func (d *Dashboard) reportFailure(verb string, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		return
	}
	d.logger.Debug().Err(err).Str("op", verb).Msg("mutation failed")
	d.notifier.Show(fmt.Sprintf("Error %s product: %v", verb, err), domain.NotifyError)
}
