package payment

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOnly_UnmarshalJSON(t *testing.T) {
	want := Date(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	cases := []struct {
		name string
		in   string
	}{
		{"date string", `"2026-03-15"`},
		{"rfc3339 string", `"2026-03-15T18:45:00Z"`},
		{"epoch seconds", `1773600300`}, // 2026-03-15T18:45:00Z
		{"epoch milliseconds", `1773600300000`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var d DateOnly
			if err := json.Unmarshal([]byte(c.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", c.in, err)
			}
			if !d.Equal(want.Time) {
				t.Errorf("got %v, want %v", d, want)
			}
		})
	}

	t.Run("null is zero", func(t *testing.T) {
		var d DateOnly
		if err := json.Unmarshal([]byte(`null`), &d); err != nil {
			t.Fatal(err)
		}
		if !d.IsZero() {
			t.Errorf("got %v, want zero", d)
		}
	})

	t.Run("garbage is an error", func(t *testing.T) {
		var d DateOnly
		if err := json.Unmarshal([]byte(`"15/03/2026"`), &d); err == nil {
			t.Error("expected error for non-ISO date")
		}
	})
}

func TestDateOnly_MarshalJSON(t *testing.T) {
	d := Date(time.Date(2026, 3, 15, 13, 1, 2, 0, time.UTC))
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2026-03-15"` {
		t.Errorf("got %s, want %q", out, "2026-03-15")
	}

	var zero DateOnly
	out, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "null" {
		t.Errorf("zero date marshals to %s, want null", out)
	}
}

func TestUpdatePaymentRequest_ApplyTo(t *testing.T) {
	rec := PaymentRecord{
		PayeeFirstName:  "Anna",
		PayeeLastName:   "Kim",
		PayeeEmail:      "anna@x.com",
		DueAmount:       1000,
		DiscountPercent: 10,
		Currency:        "USD",
	}

	newAmount := 500.0
	newLast := "Park"
	zeroDiscount := 0.0
	req := UpdatePaymentRequest{
		PayeeLastName:   &newLast,
		DueAmount:       &newAmount,
		DiscountPercent: &zeroDiscount,
	}
	req.ApplyTo(&rec)

	if rec.PayeeLastName != "Park" || rec.DueAmount != 500 {
		t.Errorf("incoming fields must win: %+v", rec)
	}
	if rec.DiscountPercent != 0 {
		t.Errorf("explicit zero must overwrite: %v", rec.DiscountPercent)
	}
	if rec.PayeeFirstName != "Anna" || rec.PayeeEmail != "anna@x.com" || rec.Currency != "USD" {
		t.Errorf("absent fields must be preserved: %+v", rec)
	}
}
