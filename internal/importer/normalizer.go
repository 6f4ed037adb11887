package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pay-managing/api-payments/internal/payment"
	"github.com/pay-managing/api-payments/internal/refdata"
	"github.com/pay-managing/api-payments/internal/validation"
)

// ErrNoValidRecords distinguishes a batch where every row was rejected from
// a partial success; partial success is not an error.
var ErrNoValidRecords = errors.New("no valid payment records in source")

var mandatoryFields = []string{
	"payee_first_name",
	"payee_last_name",
	"payee_address_line_1",
	"payee_city",
	"payee_country",
	"payee_postal_code",
	"payee_phone_number",
	"payee_email",
	"currency",
	"due_amount",
}

// FieldStat counts pass/fail outcomes of one check across the batch.
type FieldStat struct {
	Pass int
	Fail int
}

// RejectedRow keeps the original row plus every reason it failed. Checks do
// not short-circuit, so all failures are discoverable at once.
type RejectedRow struct {
	Line    int
	Values  map[string]any
	Reasons []string
}

// Result is the outcome of normalizing one batch.
type Result struct {
	Valid      []payment.PaymentRecord
	Rejected   []RejectedRow
	FieldStats map[string]*FieldStat
}

// Normalize evaluates every check against every row and partitions the
// batch. A row is valid iff all checks pass. Row-level invalidity never
// fails the call; only an all-rejected batch returns ErrNoValidRecords
// alongside the full result.
func Normalize(rows []RawRecord, ref *refdata.ReferenceData) (*Result, error) {
	res := &Result{FieldStats: make(map[string]*FieldStat)}

	for _, row := range rows {
		var reasons []string

		for _, field := range mandatoryFields {
			_, present := row.Values[field]
			res.record(field+":present", present)
			if !present {
				reasons = append(reasons, fmt.Sprintf("missing mandatory field %s", field))
			}
		}

		country, _ := row.Values["payee_country"].(string)
		if ok := validation.IsValidCountry(country, ref.Countries); !ok {
			reasons = append(reasons, fmt.Sprintf("invalid country code %q", country))
			res.record("payee_country:iso3166", false)
		} else {
			res.record("payee_country:iso3166", true)
		}

		dueDate, _ := row.Values["payee_due_date"].(string)
		if ok := validation.IsValidDate(dueDate); !ok {
			reasons = append(reasons, fmt.Sprintf("invalid due date %q", dueDate))
			res.record("payee_due_date:date", false)
		} else {
			res.record("payee_due_date:date", true)
		}

		phone, _ := row.Values["payee_phone_number"].(string)
		if ok := validation.IsValidPhone(phone); !ok {
			reasons = append(reasons, fmt.Sprintf("invalid phone number %q", phone))
			res.record("payee_phone_number:e164", false)
		} else {
			res.record("payee_phone_number:e164", true)
		}

		currency, _ := row.Values["currency"].(string)
		if ok := validation.IsValidCurrency(currency, ref.Currencies); !ok {
			reasons = append(reasons, fmt.Sprintf("invalid currency code %q", currency))
			res.record("currency:iso4217", false)
		} else {
			res.record("currency:iso4217", true)
		}

		if ok := validation.IsNumeric(row.Values["due_amount"]); !ok {
			reasons = append(reasons, "due_amount is not numeric")
			res.record("due_amount:numeric", false)
		} else {
			res.record("due_amount:numeric", true)
		}

		if len(reasons) > 0 {
			res.Rejected = append(res.Rejected, RejectedRow{Line: row.Line, Values: row.Values, Reasons: reasons})
			continue
		}
		res.Valid = append(res.Valid, buildRecord(row))
	}

	if len(rows) > 0 && len(res.Valid) == 0 {
		return res, ErrNoValidRecords
	}
	return res, nil
}

func (r *Result) record(check string, pass bool) {
	stat, ok := r.FieldStats[check]
	if !ok {
		stat = &FieldStat{}
		r.FieldStats[check] = stat
	}
	if pass {
		stat.Pass++
	} else {
		stat.Fail++
	}
}

// Report emits the operator diagnostics: per-check pass/fail counts and each
// rejected row. Informational only, the batch result is already final.
func (r *Result) Report(log zerolog.Logger) {
	for check, stat := range r.FieldStats {
		log.Info().
			Str("check", check).
			Int("pass", stat.Pass).
			Int("fail", stat.Fail).
			Msg("field validation stats")
	}
	for _, rej := range r.Rejected {
		log.Warn().
			Int("line", rej.Line).
			Strs("reasons", rej.Reasons).
			Msg("rejected row")
	}
	log.Info().
		Int("valid", len(r.Valid)).
		Int("rejected", len(r.Rejected)).
		Msg("normalization finished")
}

func buildRecord(row RawRecord) payment.PaymentRecord {
	v := row.Values
	rec := payment.PaymentRecord{
		PayeeFirstName:       str(v, "payee_first_name"),
		PayeeLastName:        str(v, "payee_last_name"),
		PayeeAddressLine1:    str(v, "payee_address_line_1"),
		PayeeAddressLine2:    str(v, "payee_address_line_2"),
		PayeeCity:            str(v, "payee_city"),
		PayeeCountry:         str(v, "payee_country"),
		PayeeProvinceOrState: str(v, "payee_province_or_state"),
		PayeePostalCode:      str(v, "payee_postal_code"),
		PayeePhoneNumber:     str(v, "payee_phone_number"),
		PayeeEmail:           str(v, "payee_email"),
		Currency:             str(v, "currency"),
		DueAmount:            num(v, "due_amount"),
		DiscountPercent:      num(v, "discount_percent"),
		TaxPercent:           num(v, "tax_percent"),
		PayeePaymentStatus:   statusOf(str(v, "payee_payment_status")),
	}

	if t, err := time.Parse(validation.DateLayout, str(v, "payee_due_date")); err == nil {
		rec.PayeeDueDate = payment.Date(t)
	}
	rec.PayeeAddedDateUTC = parseAddedDate(str(v, "payee_added_date_utc"))
	return rec
}

func str(values map[string]any, key string) string {
	s, _ := values[key].(string)
	return s
}

func num(values map[string]any, key string) float64 {
	n, _ := values[key].(float64)
	return n
}

func statusOf(raw string) payment.Status {
	switch payment.Status(strings.ToLower(strings.TrimSpace(raw))) {
	case payment.StatusDueNow:
		return payment.StatusDueNow
	case payment.StatusOverdue:
		return payment.StatusOverdue
	case payment.StatusCompleted:
		return payment.StatusCompleted
	default:
		return payment.StatusPending
	}
}

var addedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	validation.DateLayout,
}

func parseAddedDate(raw string) time.Time {
	for _, layout := range addedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
