package validator

import "testing"

type contact struct {
	Zip   string `validate:"omitempty,zip5"`
	Phone string `validate:"omitempty,phone_us"`
	Rent  string `validate:"omitempty,amount"`
}

func TestCustomRules(t *testing.T) {
	val := New()

	if err := val.Struct(contact{Zip: "62704", Phone: "(217) 555-0134", Rent: "$1,500.00"}); err != nil {
		t.Fatalf("expected valid contact, got %v", err)
	}

	err := val.Struct(contact{Zip: "6270", Phone: "12", Rent: "-5"})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fields := FieldErrors(err)
	for _, key := range []string{"contact.Zip", "contact.Phone", "contact.Rent"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected error for %s, got %v", key, fields)
		}
	}
}
