package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EntryInput is the editor's payload.
type EntryInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// ValidationError maps lower-case field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, " ")
}

// Validate checks that both fields are present.
func (in EntryInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[strings.ToLower(fe.Field())] = fmt.Sprintf("%s is required.", fe.Field())
	}
	return out
}

// Saver is the part of the entry store the editor writes to.
type Saver interface {
	Create(ctx context.Context, title, content string) error
	Update(ctx context.Context, id, title, content string) error
}

// Editor creates a new entry, or edits target when one is given.
type Editor struct {
	target *models.Entry
	Input  EntryInput
}

func NewEditor(target *models.Entry) *Editor {
	e := &Editor{target: target}
	if target != nil {
		e.Input = EntryInput{Title: target.Title, Content: target.Content}
	}
	return e
}

func (e *Editor) Editing() bool { return e.target != nil }

func (e *Editor) Heading() string {
	if e.Editing() {
		return "Edit Entry"
	}
	return "Add New Entry"
}

// Submit validates the input and makes exactly one Create or Update
// call. Invalid input never reaches the store.
func (e *Editor) Submit(ctx context.Context, s Saver) error {
	if err := e.Input.Validate(); err != nil {
		return err
	}
	if e.target == nil {
		return s.Create(ctx, e.Input.Title, e.Input.Content)
	}
	return s.Update(ctx, e.target.ID, e.Input.Title, e.Input.Content)
}
