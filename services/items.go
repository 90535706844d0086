package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// LineItem is one row of a quote. Total is always derived from
// Quantity × UnitPrice and never set directly.
type LineItem struct {
	ID          string
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

// ErrLastItem is returned by Remove when the keep-last policy blocks
// removal of the only remaining line.
var ErrLastItem = errors.New("a quote must keep at least one line item")

// ErrItemNotFound is returned when an item id does not exist in the list.
var ErrItemNotFound = errors.New("line item not found")

// ItemList is an ordered, in-memory collection of quote lines. Order is
// insertion order and matches the printed document. keepLast is a policy
// knob, not a model invariant: the calling layer decides whether the last
// line may be removed.
type ItemList struct {
	items    []LineItem
	keepLast bool
}

// NewItemList returns an empty list. When keepLast is true, Remove refuses
// to drop the only remaining item.
func NewItemList(keepLast bool) *ItemList {
	return &ItemList{keepLast: keepLast}
}

// Add appends a fresh line with default quantity 1 and unit price 0 and
// returns it.
func (l *ItemList) Add() LineItem {
	item := LineItem{
		ID:       uuid.NewString(),
		Quantity: 1,
	}
	l.items = append(l.items, item)
	return item
}

// Update sets a single field on the identified line. Editing quantity or
// unit_price recomputes the line total.
func (l *ItemList) Update(id, field string, value any) error {
	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		switch field {
		case "description":
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("description expects a string, got %T", value)
			}
			l.items[i].Description = s
		case "quantity":
			f, ok := value.(float64)
			if !ok {
				return fmt.Errorf("quantity expects a float64, got %T", value)
			}
			l.items[i].Quantity = f
			l.items[i].Total = LineTotal(l.items[i].Quantity, l.items[i].UnitPrice)
		case "unit_price":
			f, ok := value.(float64)
			if !ok {
				return fmt.Errorf("unit_price expects a float64, got %T", value)
			}
			l.items[i].UnitPrice = f
			l.items[i].Total = LineTotal(l.items[i].Quantity, l.items[i].UnitPrice)
		default:
			return fmt.Errorf("unknown line item field %q", field)
		}
		return nil
	}
	return ErrItemNotFound
}

// Remove drops the identified line. Under the keep-last policy the only
// remaining line cannot be removed.
func (l *ItemList) Remove(id string) error {
	if l.keepLast && len(l.items) == 1 && l.items[0].ID == id {
		return ErrLastItem
	}
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Items returns the lines in insertion order. The returned slice is a copy.
func (l *ItemList) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of lines.
func (l *ItemList) Len() int {
	return len(l.items)
}

// Replace swaps the whole list content, assigning fresh ids and recomputing
// every line total. Used when applying a service template or re-opening a
// persisted quote for editing.
func (l *ItemList) Replace(items []LineItem) {
	l.items = l.items[:0]
	for _, it := range items {
		l.items = append(l.items, LineItem{
			ID:          uuid.NewString(),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       LineTotal(it.Quantity, it.UnitPrice),
		})
	}
}

// LineTotals collects the derived totals of every line, in order.
func (l *ItemList) LineTotals() []float64 {
	totals := make([]float64, len(l.items))
	for i, it := range l.items {
		totals[i] = it.Total
	}
	return totals
}
