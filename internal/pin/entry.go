// File: internal/pin/entry.go
package pin

import (
	"errors"
	"strings"
)

// Length is the number of digits in a security PIN.
const Length = 6

// IncompleteMessage is what the widget shows when Submit fails with ErrIncomplete.
const IncompleteMessage = "Please enter all 6 digits"

// ErrIncomplete is returned by Submit while any slot is empty.
var ErrIncomplete = errors.New("pin: every digit must be entered before submitting")

// Entry is the six-slot PIN input widget: the digits typed so far and the focused slot.
// It is not safe for concurrent use.
type Entry struct {
	slots [Length]string
	focus int
}

// NewEntry returns an empty widget focused on the first slot.
func NewEntry() *Entry {
	return &Entry{}
}

// Type sets slot index to the first character of value. A non-digit is ignored and
// an empty value clears the slot. A digit moves focus to the next slot, stopping at the last.
// It reports whether the slot changed.
func (e *Entry) Type(index int, value string) bool {
	if index < 0 || index >= Length {
		return false
	}
	if value != "" {
		value = value[:1]
		if !isDigit(value[0]) {
			return false
		}
	}
	e.slots[index] = value
	if value != "" && index < Length-1 {
		e.focus = index + 1
	}
	return true
}

// Backspace on an already empty slot moves focus to the previous one.
func (e *Entry) Backspace(index int) {
	if index <= 0 || index >= Length {
		return
	}
	if e.slots[index] == "" {
		e.focus = index - 1
	}
}

// Paste fills the slots from the start with the pasted digits, at most six.
// Text containing anything but digits (after trimming) is rejected and leaves the widget unchanged.
func (e *Entry) Paste(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || !allDigits(text) {
		return false
	}
	if len(text) > Length {
		text = text[:Length]
	}
	for i := 0; i < len(text); i++ {
		e.slots[i] = text[i : i+1]
	}
	e.focus = Length - 1
	for i, s := range e.slots {
		if s == "" {
			e.focus = i
			break
		}
	}
	return true
}

// Focus returns the index of the focused slot.
func (e *Entry) Focus() int { return e.focus }

// Slots returns a copy of the slot values.
func (e *Entry) Slots() [Length]string { return e.slots }

// Code joins the slots; empty slots contribute nothing.
func (e *Entry) Code() string { return strings.Join(e.slots[:], "") }

// Complete reports whether every slot holds a digit.
func (e *Entry) Complete() bool {
	for _, s := range e.slots {
		if s == "" {
			return false
		}
	}
	return true
}

// Submit returns the code once every slot is filled.
func (e *Entry) Submit() (string, error) {
	if !e.Complete() {
		return "", ErrIncomplete
	}
	return e.Code(), nil
}

// Reset clears every slot and focuses the first.
func (e *Entry) Reset() {
	*e = Entry{}
}

// Validate reports whether code is exactly six ASCII digits.
func Validate(code string) bool {
	return len(code) == Length && allDigits(code)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
