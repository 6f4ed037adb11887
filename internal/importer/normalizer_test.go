package importer

import (
	"errors"
	"testing"

	"github.com/pay-managing/api-payments/internal/payment"
	"github.com/pay-managing/api-payments/internal/refdata"
)

func testRefData() *refdata.ReferenceData {
	return refdata.New(
		[]string{"US", "CA", "KR", "FR", "DE"},
		[]string{"USD", "CAD", "KRW", "EUR", "GBP"},
	)
}

func validRow(line int) RawRecord {
	return RawRecord{
		Line: line,
		Values: map[string]any{
			"payee_first_name":      "Anna",
			"payee_last_name":       "Kim",
			"payee_address_line_1":  "12 Main St",
			"payee_city":            "Seoul",
			"payee_country":         "KR",
			"payee_postal_code":     "04524",
			"payee_phone_number":    "+821012345678",
			"payee_email":           "anna@x.com",
			"currency":              "KRW",
			"due_amount":            1000.0,
			"discount_percent":      10.0,
			"tax_percent":           5.0,
			"payee_due_date":        "2026-04-01",
			"payee_added_date_utc":  "2026-03-01T09:00:00Z",
			"payee_payment_status":  "pending",
		},
	}
}

func TestNormalize_ValidRowPasses(t *testing.T) {
	res, err := Normalize([]RawRecord{validRow(2)}, testRefData())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(res.Valid) != 1 || len(res.Rejected) != 0 {
		t.Fatalf("valid=%d rejected=%d, want 1/0", len(res.Valid), len(res.Rejected))
	}

	rec := res.Valid[0]
	if rec.PayeeFirstName != "Anna" || rec.DueAmount != 1000 || rec.Currency != "KRW" {
		t.Errorf("record mapped wrong: %+v", rec)
	}
	if rec.PayeeDueDate.String() != "2026-04-01" {
		t.Errorf("due date = %s", rec.PayeeDueDate)
	}
	if rec.PayeePaymentStatus != payment.StatusPending {
		t.Errorf("status = %s", rec.PayeePaymentStatus)
	}
	if rec.PayeeAddedDateUTC.Year() != 2026 {
		t.Errorf("added date = %v", rec.PayeeAddedDateUTC)
	}
}

func TestNormalize_MissingEmailRejectsRegardlessOfOtherFields(t *testing.T) {
	row := validRow(2)
	delete(row.Values, "payee_email")

	res, err := Normalize([]RawRecord{row}, testRefData())
	if !errors.Is(err, ErrNoValidRecords) {
		t.Fatalf("err = %v, want ErrNoValidRecords", err)
	}
	if len(res.Rejected) != 1 {
		t.Fatalf("rejected = %d, want 1", len(res.Rejected))
	}
	found := false
	for _, reason := range res.Rejected[0].Reasons {
		if reason == "missing mandatory field payee_email" {
			found = true
		}
	}
	if !found {
		t.Errorf("reasons = %v", res.Rejected[0].Reasons)
	}
}

func TestNormalize_CollectsAllFailuresNotJustFirst(t *testing.T) {
	row := validRow(3)
	row.Values["payee_country"] = "XX"
	row.Values["payee_phone_number"] = "not-a-phone"
	row.Values["due_amount"] = "1000" // numeric-looking string stays invalid

	res, err := Normalize([]RawRecord{row}, testRefData())
	if !errors.Is(err, ErrNoValidRecords) {
		t.Fatalf("err = %v", err)
	}
	if got := len(res.Rejected[0].Reasons); got != 3 {
		t.Errorf("expected all 3 failing checks reported, got %d: %v", got, res.Rejected[0].Reasons)
	}
}

func TestNormalize_PartialSuccessIsNotAnError(t *testing.T) {
	bad := validRow(3)
	bad.Values["currency"] = "XYZ"

	res, err := Normalize([]RawRecord{validRow(2), bad}, testRefData())
	if err != nil {
		t.Fatalf("partial success must not error: %v", err)
	}
	if len(res.Valid) != 1 || len(res.Rejected) != 1 {
		t.Errorf("valid=%d rejected=%d, want 1/1", len(res.Valid), len(res.Rejected))
	}
	if res.Rejected[0].Line != 3 {
		t.Errorf("rejected line = %d, want 3", res.Rejected[0].Line)
	}
}

func TestNormalize_FieldStats(t *testing.T) {
	bad := validRow(3)
	bad.Values["payee_due_date"] = "04/01/2026"

	res, _ := Normalize([]RawRecord{validRow(2), bad}, testRefData())

	stat, ok := res.FieldStats["payee_due_date:date"]
	if !ok {
		t.Fatal("missing payee_due_date:date stat")
	}
	if stat.Pass != 1 || stat.Fail != 1 {
		t.Errorf("date stat = %+v, want 1 pass / 1 fail", stat)
	}

	present := res.FieldStats["payee_email:present"]
	if present == nil || present.Pass != 2 || present.Fail != 0 {
		t.Errorf("email presence stat = %+v", present)
	}
}

func TestNormalize_EmptyBatch(t *testing.T) {
	res, err := Normalize(nil, testRefData())
	if err != nil {
		t.Fatalf("empty batch must not be ErrNoValidRecords: %v", err)
	}
	if len(res.Valid) != 0 {
		t.Errorf("valid = %d", len(res.Valid))
	}
}

func TestNormalize_CompletedStatusSurvivesImport(t *testing.T) {
	row := validRow(2)
	row.Values["payee_payment_status"] = "Completed"

	res, err := Normalize([]RawRecord{row}, testRefData())
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid[0].PayeePaymentStatus != payment.StatusCompleted {
		t.Errorf("status = %s, want completed", res.Valid[0].PayeePaymentStatus)
	}
}
