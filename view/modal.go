package view

import (
	"bytes"
	"fmt"
	"html/template"
)

// ModalField is one input in the modal's form. Error carries a field-level
// validation message from the backend.
type ModalField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

// Modal is the scoped overlay paired with the master-data table. Its state
// transitions are plain method calls so the close-once and no-duplicate-
// submit guarantees can be tested without a browser; rendering is a thin
// read of that state.
type Modal struct {
	Title     string
	Action    string
	CancelURL string
	Fields    []ModalField

	isOpen     bool
	submitting bool
	errMsg     string
	onClose    func()
	closeFired bool
}

// Open makes the modal visible. onClose fires exactly once per open, on
// backdrop click, explicit cancel, or the caller's close-on-success call.
func (m *Modal) Open(onClose func()) {
	m.isOpen = true
	m.submitting = false
	m.errMsg = ""
	m.onClose = onClose
	m.closeFired = false
}

// IsOpen reports whether the modal renders at all.
func (m *Modal) IsOpen() bool {
	return m.isOpen
}

// BackdropClick closes the modal as if the user clicked outside it.
func (m *Modal) BackdropClick() {
	m.close()
}

// Cancel closes the modal from its explicit cancel control.
func (m *Modal) Cancel() {
	m.close()
}

// Close is the caller's close-on-success call after a submission completed.
func (m *Modal) Close() {
	m.close()
}

func (m *Modal) close() {
	if !m.isOpen {
		return
	}
	m.isOpen = false
	m.submitting = false
	if m.onClose != nil && !m.closeFired {
		m.closeFired = true
		m.onClose()
	}
}

// BeginSubmit marks a submission as in flight. It reports false — and the
// caller must not submit — when the modal is closed or a prior submission
// has not finished yet.
func (m *Modal) BeginSubmit() bool {
	if !m.isOpen || m.submitting {
		return false
	}
	m.submitting = true
	return true
}

// FailSubmit surfaces a submission error. The modal stays open and the
// submit control is re-enabled so the user can correct and retry.
func (m *Modal) FailSubmit(msg string) {
	if !m.isOpen {
		return
	}
	m.submitting = false
	m.errMsg = msg
}

// Submitting reports whether a submission is in flight (submit disabled).
func (m *Modal) Submitting() bool {
	return m.submitting
}

// Error returns the current submission error message, if any.
func (m *Modal) Error() string {
	return m.errMsg
}

type modalData struct {
	Title      string
	Action     string
	CancelURL  string
	Fields     []ModalField
	Error      string
	Submitting bool
}

// Render produces the overlay markup, or nothing while the modal is closed.
func (m *Modal) Render() (template.HTML, error) {
	if !m.isOpen {
		return "", nil
	}

	var buf bytes.Buffer
	err := modalTmpl.Execute(&buf, modalData{
		Title:      m.Title,
		Action:     m.Action,
		CancelURL:  m.CancelURL,
		Fields:     m.Fields,
		Error:      m.errMsg,
		Submitting: m.submitting,
	})
	if err != nil {
		return "", fmt.Errorf("render modal: %w", err)
	}
	return template.HTML(buf.String()), nil
}
