package services

import (
	"errors"
	"estoque-console/models"
)

// ErrStaleResult marks a submission outcome whose epoch no longer matches the
// draft. The reducer leaves state unchanged when it returns it.
var ErrStaleResult = errors.New("stale result discarded")

// SaleState is the sale dialog: a loaded product snapshot, the cart being
// composed and the submission flag. Epoch changes whenever the dialog is
// opened or closed.
type SaleState struct {
	DraftID    string
	Epoch      uint64
	Open       bool
	Products   []models.Product
	Cart       *models.Cart
	Submitting bool
	LastError  string
	LastOrder  *models.Order
}

type SaleAction interface {
	saleAction()
}

type OpenSale struct {
	Epoch    uint64
	Products []models.Product
}

type AddSaleLine struct {
	ProductID int
	Quantity  int
}

type RemoveSaleLine struct {
	ProductID int
}

type SubmitStarted struct{}

type SubmitSucceeded struct {
	Epoch uint64
	Order *models.Order
}

type SubmitFailed struct {
	Epoch   uint64
	Message string
}

type CloseSale struct {
	Epoch uint64
}

func (OpenSale) saleAction()        {}
func (AddSaleLine) saleAction()     {}
func (RemoveSaleLine) saleAction()  {}
func (SubmitStarted) saleAction()   {}
func (SubmitSucceeded) saleAction() {}
func (SubmitFailed) saleAction()    {}
func (CloseSale) saleAction()       {}

var errSaleClosed = NewValidationError("sale is not open")

// ReduceSale applies one action. On error the input state is returned as is;
// the input cart is never mutated.
func ReduceSale(state SaleState, action SaleAction) (SaleState, error) {
	switch a := action.(type) {
	case OpenSale:
		products := make([]models.Product, len(a.Products))
		copy(products, a.Products)
		return SaleState{
			DraftID:  state.DraftID,
			Epoch:    a.Epoch,
			Open:     true,
			Products: products,
			Cart:     models.NewCart(),
		}, nil

	case AddSaleLine:
		if !state.Open {
			return state, errSaleClosed
		}
		if state.Submitting {
			return state, ErrSubmissionInProgress
		}
		product, ok := findProduct(state.Products, a.ProductID)
		if !ok {
			return state, models.NewValidationErrorf(models.ErrMsgProductNotLoaded, a.ProductID)
		}
		cart := state.cart().Clone()
		if err := cart.Add(product, a.Quantity); err != nil {
			return state, err
		}
		next := state
		next.Cart = cart
		next.LastError = ""
		return next, nil

	case RemoveSaleLine:
		if !state.Open {
			return state, errSaleClosed
		}
		if state.Submitting {
			return state, ErrSubmissionInProgress
		}
		cart := state.cart().Clone()
		cart.Remove(a.ProductID)
		next := state
		next.Cart = cart
		return next, nil

	case SubmitStarted:
		if !state.Open {
			return state, errSaleClosed
		}
		if state.Submitting {
			return state, ErrSubmissionInProgress
		}
		if state.cart().IsEmpty() {
			return state, ErrEmptyCart
		}
		next := state
		next.Submitting = true
		next.LastError = ""
		return next, nil

	case SubmitSucceeded:
		if !state.Submitting || a.Epoch != state.Epoch {
			return state, ErrStaleResult
		}
		next := state
		next.Cart = models.NewCart()
		next.Submitting = false
		next.Open = false
		next.LastOrder = a.Order
		return next, nil

	case SubmitFailed:
		if !state.Submitting || a.Epoch != state.Epoch {
			return state, ErrStaleResult
		}
		next := state
		next.Submitting = false
		next.LastError = a.Message
		return next, nil

	case CloseSale:
		return SaleState{
			DraftID: state.DraftID,
			Epoch:   a.Epoch,
			Cart:    models.NewCart(),
		}, nil
	}
	return state, nil
}

func (s SaleState) cart() *models.Cart {
	if s.Cart == nil {
		return models.NewCart()
	}
	return s.Cart
}

// CanSubmit reports whether the finalize action is currently permitted.
func (s SaleState) CanSubmit() bool {
	return s.Open && !s.Submitting && !s.cart().IsEmpty()
}

func findProduct(products []models.Product, id int) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
