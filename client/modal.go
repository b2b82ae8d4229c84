package client

import (
	"context"
	"errors"
)

type ModalKind string

const (
	ModalCreateProduct  ModalKind = "create-product"
	ModalEditProduct    ModalKind = "edit-product"
	ModalCreateCategory ModalKind = "create-category"
	ModalEditCategory   ModalKind = "edit-category"
	ModalDeleteConfirm  ModalKind = "delete-confirm"
)

type TargetType string

const (
	TargetProduct  TargetType = "product"
	TargetCategory TargetType = "category"
)

type ModalAction string

const (
	ActionSubmit  ModalAction = "submit"
	ActionConfirm ModalAction = "confirm"
	ActionCancel  ModalAction = "cancel"
)

var (
	ErrNoModal   = errors.New("no modal is open")
	ErrNoHandler = errors.New("modal has no handler for this action")
)

type DeleteTarget struct {
	Type TargetType
	ID   uint
	Name string
}

// Modal is what the view shows while a modal is open.
type Modal struct {
	Kind  ModalKind
	Title string
	// EntityID is the record being edited, zero for create forms.
	EntityID    uint
	Values      FormValues
	Target      *DeleteTarget
	FieldErrors map[string][]string
}

type modalHandler func(ctx context.Context, values FormValues)

// modalSession is one open modal with the handlers attached for its
// lifetime. Handlers are dropped when the session closes, so a late
// response from a closed modal can be told apart by pointer identity.
type modalSession struct {
	modal    Modal
	handlers map[ModalAction]modalHandler
}

func newModalSession(m Modal) *modalSession {
	if m.Values == nil {
		m.Values = FormValues{}
	}
	return &modalSession{
		modal:    m,
		handlers: map[ModalAction]modalHandler{},
	}
}

func (s *modalSession) on(action ModalAction, h modalHandler) *modalSession {
	s.handlers[action] = h
	return s
}

func (s *modalSession) handler(action ModalAction) (modalHandler, bool) {
	h, ok := s.handlers[action]
	return h, ok
}

func (s *modalSession) teardown() {
	for action := range s.handlers {
		delete(s.handlers, action)
	}
}

func (m Modal) clone() Modal {
	out := m
	out.Values = m.Values.clone()
	if m.Target != nil {
		target := *m.Target
		out.Target = &target
	}
	if m.FieldErrors != nil {
		out.FieldErrors = make(map[string][]string, len(m.FieldErrors))
		for k, v := range m.FieldErrors {
			out.FieldErrors[k] = append([]string(nil), v...)
		}
	}
	return out
}
