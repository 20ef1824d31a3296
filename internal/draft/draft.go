// Package draft implements the create-product workflow: an in-memory draft
// record mutated field by field, validated on submit, then pushed to the
// catalog service with an optional dependent image upload.
package draft

import (
	"fmt"

	"github.com/spf13/cast"
)

// Draft is the not-yet-persisted product record being composed.
type Draft struct {
	Title           string
	Description     string
	Price           float64
	DiscountedPrice float64
	Quantity        int
	Live            bool
	Stock           bool
	Image           *Attachment
}

// Blank is the initial draft state: one unit, in stock, not live, no image.
func Blank() Draft {
	return Draft{Quantity: 1, Stock: true}
}

// Field enumerates the draft fields the generic setter may touch. Keeping
// the set closed makes an unknown field name an adapter-boundary error
// instead of a silent merge of garbage.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldPrice
	FieldDiscountedPrice
	FieldQuantity
	FieldLive
	FieldStock
)

var fieldNames = map[Field]string{
	FieldTitle:           "title",
	FieldDescription:     "description",
	FieldPrice:           "price",
	FieldDiscountedPrice: "discountedPrice",
	FieldQuantity:        "quantity",
	FieldLive:            "live",
	FieldStock:           "stock",
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseField maps a wire name to its Field.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

// Apply coerces v into the field's type and merges it into the draft.
// Form values arrive as strings, so coercion is deliberately loose.
// No business validation happens here; that is deferred to submit.
func (d *Draft) Apply(f Field, v any) error {
	switch f {
	case FieldTitle:
		s, err := cast.ToStringE(v)
		if err != nil {
			return applyErr(f, err)
		}
		d.Title = s
	case FieldDescription:
		s, err := cast.ToStringE(v)
		if err != nil {
			return applyErr(f, err)
		}
		d.Description = s
	case FieldPrice:
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return applyErr(f, err)
		}
		d.Price = n
	case FieldDiscountedPrice:
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return applyErr(f, err)
		}
		d.DiscountedPrice = n
	case FieldQuantity:
		n, err := cast.ToIntE(v)
		if err != nil {
			return applyErr(f, err)
		}
		d.Quantity = n
	case FieldLive:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return applyErr(f, err)
		}
		d.Live = b
	case FieldStock:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return applyErr(f, err)
		}
		d.Stock = b
	default:
		return fmt.Errorf("unknown field %v", f)
	}
	return nil
}

func applyErr(f Field, err error) error {
	return fmt.Errorf("field %s: %w", f, err)
}

// Clone returns an independent copy of the draft, attachment included.
func (d Draft) Clone() Draft {
	out := d
	if d.Image != nil {
		img := *d.Image
		img.Data = make([]byte, len(d.Image.Data))
		copy(img.Data, d.Image.Data)
		out.Image = &img
	}
	return out
}
