package draft

import "testing"

func TestBlankDefaults(t *testing.T) {
	d := Blank()
	if d.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", d.Quantity)
	}
	if d.Live {
		t.Fatalf("expected live to default to false")
	}
	if !d.Stock {
		t.Fatalf("expected stock to default to true")
	}
	if d.Image != nil {
		t.Fatalf("expected blank draft to have no image")
	}
}

func TestParseField(t *testing.T) {
	for _, name := range []string{"title", "description", "price", "discountedPrice", "quantity", "live", "stock"} {
		f, err := ParseField(name)
		if err != nil {
			t.Fatalf("ParseField(%q) failed: %v", name, err)
		}
		if f.String() != name {
			t.Fatalf("round trip mismatch: %q -> %v -> %q", name, f, f.String())
		}
	}
	if _, err := ParseField("imagePreview"); err == nil {
		t.Fatalf("expected error for unknown field name")
	}
}

func TestApplyCoercesFormValues(t *testing.T) {
	d := Blank()
	if err := d.Apply(FieldTitle, "Lamp"); err != nil {
		t.Fatalf("apply title: %v", err)
	}
	if err := d.Apply(FieldPrice, "49.90"); err != nil {
		t.Fatalf("apply price: %v", err)
	}
	if err := d.Apply(FieldQuantity, "3"); err != nil {
		t.Fatalf("apply quantity: %v", err)
	}
	if err := d.Apply(FieldLive, "true"); err != nil {
		t.Fatalf("apply live: %v", err)
	}
	if d.Title != "Lamp" || d.Price != 49.90 || d.Quantity != 3 || !d.Live {
		t.Fatalf("unexpected draft after applies: %+v", d)
	}

	if err := d.Apply(FieldPrice, "not a number"); err == nil {
		t.Fatalf("expected coercion error for bad price")
	}
	if d.Price != 49.90 {
		t.Fatalf("failed apply must not mutate the draft, price is now %v", d.Price)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := Blank()
	d.Title = "Lamp"
	d.Image = &Attachment{Name: "a.png", Data: []byte{1, 2, 3}, Preview: "data:image/png;base64,AQID"}

	c := d.Clone()
	c.Title = "Changed"
	c.Image.Data[0] = 9

	if d.Title != "Lamp" {
		t.Fatalf("clone mutation leaked into original title")
	}
	if d.Image.Data[0] != 1 {
		t.Fatalf("clone mutation leaked into original image bytes")
	}
}
