package payment

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status is the payment lifecycle state. Completed is terminal: date-driven
// recomputation never overwrites it once evidence has been attached.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDueNow    Status = "due_now"
	StatusOverdue   Status = "overdue"
	StatusCompleted Status = "completed"
)

// DateOnly is a calendar date at UTC with no time component. It is the single
// internal representation of due dates: the JSON boundary accepts both
// "YYYY-MM-DD" strings and epoch timestamps and converts exactly once here.
type DateOnly struct {
	time.Time
}

const dateLayout = "2006-01-02"

// Date truncates t to its UTC calendar date.
func Date(t time.Time) DateOnly {
	u := t.UTC()
	return DateOnly{time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d DateOnly) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*d = DateOnly{}
		return nil
	case string:
		if v == "" {
			*d = DateOnly{}
			return nil
		}
		if t, err := time.Parse(dateLayout, v); err == nil {
			*d = Date(t)
			return nil
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fmt.Errorf("invalid due date %q: want YYYY-MM-DD", v)
		}
		*d = Date(t)
		return nil
	case json.Number:
		epoch, err := v.Int64()
		if err != nil {
			return fmt.Errorf("invalid epoch due date %q", v.String())
		}
		// Heuristic: values beyond the year ~33658 in seconds are milliseconds.
		if epoch > 1e12 {
			epoch /= 1000
		}
		*d = Date(time.Unix(epoch, 0))
		return nil
	default:
		return fmt.Errorf("invalid due date of type %T", raw)
	}
}

func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *DateOnly) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = DateOnly{}
		return nil
	case time.Time:
		*d = Date(v)
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		*d = Date(t)
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

// PaymentRecord is a payee owed a payment. TotalDue is always derived from
// the amount/discount/tax triple and is never persisted.
type PaymentRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PayeeFirstName       string `json:"payee_first_name"`
	PayeeLastName        string `json:"payee_last_name"`
	PayeeAddressLine1    string `json:"payee_address_line_1"`
	PayeeAddressLine2    string `json:"payee_address_line_2,omitempty"`
	PayeeCity            string `json:"payee_city"`
	PayeeCountry         string `gorm:"size:2" json:"payee_country"`
	PayeeProvinceOrState string `json:"payee_province_or_state,omitempty"`
	PayeePostalCode      string `json:"payee_postal_code"`
	PayeePhoneNumber     string `gorm:"size:16" json:"payee_phone_number"`
	PayeeEmail           string `json:"payee_email"`

	Currency        string   `gorm:"size:3" json:"currency"`
	DueAmount       float64  `gorm:"not null" json:"due_amount"`
	DiscountPercent float64  `json:"discount_percent"`
	TaxPercent      float64  `json:"tax_percent"`
	PayeeDueDate    DateOnly `gorm:"type:date" json:"payee_due_date"`

	PayeeAddedDateUTC  time.Time `json:"payee_added_date_utc"`
	PayeePaymentStatus Status    `gorm:"size:20;default:'pending'" json:"payee_payment_status"`

	EvidenceFileURL  string `json:"evidence_file_url,omitempty"`
	EvidenceFileName string `json:"evidence_file_name,omitempty"`

	// Recomputed on every read and update, see Derive.
	TotalDue float64 `gorm:"-" json:"total_due"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
