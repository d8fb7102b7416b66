// Package editor implements the admin create/edit forms for categories,
// subcategories and products.
//
// A Form moves Closed -> Creating|Editing -> Submitting -> Closed. A failed
// submit returns to the state it came from with the entered values intact.
// Nothing is written locally: a successful submit or delete asks the
// Refresher to reload the affected collections from the backend.
package editor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/slug"
)

type Mode int

const (
	Closed Mode = iota
	Creating
	Editing
	Submitting
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return "closed"
}

var (
	ErrNotOpen            = errors.New("form is not open")
	ErrBusy               = errors.New("submission in progress")
	ErrIncomplete         = errors.New("required fields missing")
	ErrNotScoped          = errors.New("form has no parent category")
	ErrUnknownSubcategory = errors.New("subcategory does not belong to the selected category")
	ErrNoPendingDelete    = errors.New("no delete awaiting confirmation")
	// ErrRefreshFailed means the backend accepted the write but the reload
	// that follows it failed. The form is closed anyway.
	ErrRefreshFailed = errors.New("saved, but reloading the catalog failed")
)

// Writer issues the backend writes. *backend.AdminClient implements it.
type Writer interface {
	CreateCategory(ctx context.Context, in domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateSubcategory(ctx context.Context, in domain.Subcategory) (domain.Subcategory, error)
	UpdateSubcategory(ctx context.Context, id string, in domain.Subcategory) (domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error
	CreateProduct(ctx context.Context, in domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Refresher reloads collections after a write. *catalog.Store implements it.
type Refresher interface {
	Invalidate(ctx context.Context, kind domain.EntityKind) error
}

// Source provides the catalog used to compute subcategory options.
type Source interface {
	Snapshot() catalog.Catalog
}

type Deps struct {
	Writer    Writer
	Refresher Refresher
	Catalog   Source
	Logger    *zap.Logger
}

// Form is one entity form. It is not safe for concurrent use.
type Form[D Draft] struct {
	deps     Deps
	newDraft func() D
	validate *validator.Validate

	draft         D
	mode          Mode
	slugEdited    bool
	options       []domain.Subcategory
	pendingDelete string
	lastErr       error
}

func NewCategoryForm(deps Deps) *Form[*CategoryDraft] {
	return newForm(deps, func() *CategoryDraft { return new(CategoryDraft) })
}

func NewSubcategoryForm(deps Deps) *Form[*SubcategoryDraft] {
	return newForm(deps, func() *SubcategoryDraft { return new(SubcategoryDraft) })
}

func NewProductForm(deps Deps) *Form[*ProductDraft] {
	return newForm(deps, func() *ProductDraft { return new(ProductDraft) })
}

func newForm[D Draft](deps Deps, newDraft func() D) *Form[D] {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	f := &Form[D]{deps: deps, newDraft: newDraft, validate: v}
	f.draft = newDraft()
	return f
}

func (f *Form[D]) Mode() Mode { return f.mode }

// Draft returns the values currently in the form.
func (f *Form[D]) Draft() D { return f.draft }

// LastError is the error of the most recent failed submit or delete.
func (f *Form[D]) LastError() error { return f.lastErr }

// Options lists the subcategories selectable for the chosen category.
func (f *Form[D]) Options() []domain.Subcategory { return f.options }

// Blank returns a new draft holding the create defaults, for decoding input
// into before Apply.
func (f *Form[D]) Blank() D {
	d := f.newDraft()
	d.defaults()
	return d
}

// OpenCreate starts a new record with default values.
func (f *Form[D]) OpenCreate() error {
	if f.mode == Submitting {
		return ErrBusy
	}
	f.draft = f.newDraft()
	f.draft.defaults()
	f.mode = Creating
	f.slugEdited = false
	f.options = []domain.Subcategory{}
	f.lastErr = nil
	return nil
}

// OpenEdit starts editing an existing record, prefilled with current.
func (f *Form[D]) OpenEdit(current D) error {
	if f.mode == Submitting {
		return ErrBusy
	}
	f.draft = current
	f.mode = Editing
	f.slugEdited = false
	f.lastErr = nil
	f.options = []domain.Subcategory{}
	if p, ok := any(current).(parented); ok {
		f.options = f.deps.Catalog.Snapshot().SubcategoriesOf(*p.category())
	}
	return nil
}

// Close discards the form and any edits.
func (f *Form[D]) Close() {
	f.draft = f.newDraft()
	f.mode = Closed
	f.slugEdited = false
	f.options = nil
}

// SetName sets the name. While creating, the slug follows the name until it
// has been edited by hand; while editing, the slug is left alone.
func (f *Form[D]) SetName(name string) error {
	if err := f.requireOpen(); err != nil {
		return err
	}
	b := f.draft.base()
	b.Name = name
	if f.mode == Creating && !f.slugEdited {
		b.Slug = slug.Make(name)
	}
	return nil
}

// SetSlug overrides the slug. The value sticks through later name edits.
func (f *Form[D]) SetSlug(s string) error {
	if err := f.requireOpen(); err != nil {
		return err
	}
	f.draft.base().Slug = s
	f.slugEdited = true
	return nil
}

// SetCategory selects the parent category, clears the selected subcategory
// and recomputes Options.
func (f *Form[D]) SetCategory(categorySlug string) error {
	if err := f.requireOpen(); err != nil {
		return err
	}
	p, ok := any(f.draft).(parented)
	if !ok {
		return ErrNotScoped
	}
	*p.category() = categorySlug
	if sub := p.subcategory(); sub != nil {
		*sub = ""
	}
	f.options = f.deps.Catalog.Snapshot().SubcategoriesOf(categorySlug)
	return nil
}

// SetSubcategory selects one of Options, or clears the selection when s is
// empty. The current value is always accepted so that records pointing at a
// deleted subcategory stay editable.
func (f *Form[D]) SetSubcategory(s string) error {
	if err := f.requireOpen(); err != nil {
		return err
	}
	p, ok := any(f.draft).(parented)
	if !ok || p.subcategory() == nil {
		return ErrNotScoped
	}
	if s != "" && s != *p.subcategory() && !containsSlug(f.options, s) {
		return fmt.Errorf("%w: %q", ErrUnknownSubcategory, s)
	}
	*p.subcategory() = s
	return nil
}

// Apply copies in into the form the way a user would type it: name first,
// then an explicit slug, then the parent selections and the remaining fields.
func (f *Form[D]) Apply(in D) error {
	if err := f.SetName(in.base().Name); err != nil {
		return err
	}
	if s := in.base().Slug; s != "" && s != f.draft.base().Slug {
		if err := f.SetSlug(s); err != nil {
			return err
		}
	}
	if p, ok := any(in).(parented); ok {
		cur := any(f.draft).(parented)
		if *p.category() != *cur.category() || f.mode == Creating {
			if err := f.SetCategory(*p.category()); err != nil {
				return err
			}
		}
		if sub := p.subcategory(); sub != nil {
			if err := f.SetSubcategory(*sub); err != nil {
				return err
			}
		}
	}
	f.draft.copyFields(in)
	return nil
}

// Edit changes fields that have no derived state, such as prices or flags.
func (f *Form[D]) Edit(fn func(D)) error {
	if err := f.requireOpen(); err != nil {
		return err
	}
	fn(f.draft)
	return nil
}

// MissingFields lists the required fields that are still empty, by their
// JSON names.
func (f *Form[D]) MissingFields() []string {
	err := f.validate.Struct(f.draft)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}

// CanSubmit reports whether the form is open and complete.
func (f *Form[D]) CanSubmit() bool {
	return (f.mode == Creating || f.mode == Editing) && len(f.MissingFields()) == 0
}

// Submit writes the draft to the backend. On success the affected
// collections are reloaded, the form closes and the saved draft is returned.
// On failure the form goes back to the state it was in.
func (f *Form[D]) Submit(ctx context.Context) (D, error) {
	var zero D
	if f.mode == Submitting {
		return zero, ErrBusy
	}
	if err := f.requireOpen(); err != nil {
		return zero, err
	}
	if missing := f.MissingFields(); len(missing) > 0 {
		return zero, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(missing, ", "))
	}

	origin := f.mode
	f.mode = Submitting
	kind := f.draft.Kind()
	if err := f.draft.save(ctx, f.deps.Writer); err != nil {
		f.mode = origin
		f.lastErr = err
		f.deps.Logger.Info("admin submit failed", zap.String("kind", string(kind)), zap.String("mode", origin.String()), zap.Error(err))
		return zero, err
	}

	saved := f.draft
	f.Close()
	f.lastErr = nil
	if err := f.deps.Refresher.Invalidate(ctx, kind); err != nil {
		f.deps.Logger.Warn("reload after write failed", zap.String("kind", string(kind)), zap.Error(err))
		return saved, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return saved, nil
}

// RequestDelete asks for confirmation before deleting id.
func (f *Form[D]) RequestDelete(id string) error {
	if f.mode == Submitting {
		return ErrBusy
	}
	f.pendingDelete = id
	return nil
}

// PendingDelete is the id awaiting confirmation, if any.
func (f *Form[D]) PendingDelete() string { return f.pendingDelete }

func (f *Form[D]) CancelDelete() { f.pendingDelete = "" }

// ConfirmDelete deletes the pending id. Related records are not touched: a
// deleted subcategory leaves its products pointing at a missing slug.
func (f *Form[D]) ConfirmDelete(ctx context.Context) error {
	id := f.pendingDelete
	if id == "" {
		return ErrNoPendingDelete
	}
	f.pendingDelete = ""
	kind := f.draft.Kind()
	if err := f.draft.remove(ctx, f.deps.Writer, id); err != nil {
		f.lastErr = err
		return err
	}
	f.lastErr = nil
	if err := f.deps.Refresher.Invalidate(ctx, kind); err != nil {
		f.deps.Logger.Warn("reload after delete failed", zap.String("kind", string(kind)), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return nil
}

func (f *Form[D]) requireOpen() error {
	switch f.mode {
	case Creating, Editing:
		return nil
	case Submitting:
		return ErrBusy
	}
	return ErrNotOpen
}

func containsSlug(subs []domain.Subcategory, s string) bool {
	for _, sub := range subs {
		if sub.Slug == s {
			return true
		}
	}
	return false
}
