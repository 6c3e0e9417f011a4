// Package picker provides the dropdown view-model shared by the CLI and the
// terminal UI.
package picker

import (
	"errors"
	"sync"
)

var (
	// ErrOptionNotFound is returned when no option carries the requested value.
	ErrOptionNotFound = errors.New("option not found")

	// ErrOptionDisabled is returned when the requested option cannot be selected.
	ErrOptionDisabled = errors.New("option is disabled")
)

// Option is a single dropdown entry.
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// Dropdown is an ordered, goroutine-safe list of options with at most one
// selected entry.
type Dropdown struct {
	mu      sync.RWMutex
	options []Option
}

// NewDropdown creates a dropdown holding opts.
func NewDropdown(opts ...Option) *Dropdown {
	d := &Dropdown{}
	d.Reset(opts...)
	return d
}

// Reset replaces every option with opts.
func (d *Dropdown) Reset(opts ...Option) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.options = make([]Option, 0, len(opts))
	for _, opt := range opts {
		d.appendLocked(opt)
	}
}

// Append adds opt at the end.
func (d *Dropdown) Append(opt Option) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.appendLocked(opt)
}

// appendLocked keeps the single-selection invariant: a newly appended
// selected option clears the previous selection.
func (d *Dropdown) appendLocked(opt Option) {
	if opt.Selected {
		for i := range d.options {
			d.options[i].Selected = false
		}
	}
	d.options = append(d.options, opt)
}

// Options returns a copy of the options in order.
func (d *Dropdown) Options() []Option {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Option, len(d.options))
	copy(out, d.options)
	return out
}

// Len returns the number of options.
func (d *Dropdown) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.options)
}

// SelectedIndex returns the index of the effective selection, or -1.
// Without an explicit selection the first enabled option is effective.
func (d *Dropdown) SelectedIndex() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.selectedIndexLocked()
}

// DisplayIndex returns the index of the option shown while the dropdown is
// closed: the effective selection, else the first option, else -1.
func (d *Dropdown) DisplayIndex() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i := d.selectedIndexLocked(); i >= 0 {
		return i
	}
	if len(d.options) > 0 {
		return 0
	}
	return -1
}

func (d *Dropdown) selectedIndexLocked() int {
	for i, opt := range d.options {
		if opt.Selected {
			return i
		}
	}
	for i, opt := range d.options {
		if !opt.Disabled {
			return i
		}
	}
	return -1
}

// Value returns the value of the effective selection.
func (d *Dropdown) Value() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.selectedIndexLocked()
	if i < 0 {
		return ""
	}
	return d.options[i].Value
}

// Select marks the first enabled option whose value equals value as selected.
func (d *Dropdown) Select(value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	found := false
	for i, opt := range d.options {
		if opt.Value != value {
			continue
		}
		found = true
		if opt.Disabled {
			continue
		}
		d.selectLocked(i)
		return nil
	}

	if found {
		return ErrOptionDisabled
	}
	return ErrOptionNotFound
}

// Move shifts the selection by delta enabled options, stopping at either end.
func (d *Dropdown) Move(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if delta == 0 || len(d.options) == 0 {
		return
	}

	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}

	target := d.selectedIndexLocked()
	for i := target + step; i >= 0 && i < len(d.options) && delta > 0; i += step {
		if d.options[i].Disabled {
			continue
		}
		target = i
		delta--
	}

	if target >= 0 {
		d.selectLocked(target)
	}
}

func (d *Dropdown) selectLocked(idx int) {
	for i := range d.options {
		d.options[i].Selected = i == idx
	}
}
