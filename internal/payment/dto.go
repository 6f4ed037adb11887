package payment

// ListResponse is the envelope for GET /payments.
type ListResponse struct {
	Payments   []PaymentRecord `json:"payments"`
	TotalItems int             `json:"totalItems"`
}

// UpdatePaymentRequest is a partial field mapping for PUT /payments/{id}.
// Pointer fields distinguish "absent" from zero values; merge is shallow
// field replacement, nested structures are replaced wholesale.
type UpdatePaymentRequest struct {
	PayeeFirstName       *string   `json:"payee_first_name"`
	PayeeLastName        *string   `json:"payee_last_name"`
	PayeeAddressLine1    *string   `json:"payee_address_line_1"`
	PayeeAddressLine2    *string   `json:"payee_address_line_2"`
	PayeeCity            *string   `json:"payee_city"`
	PayeeCountry         *string   `json:"payee_country"`
	PayeeProvinceOrState *string   `json:"payee_province_or_state"`
	PayeePostalCode      *string   `json:"payee_postal_code"`
	PayeePhoneNumber     *string   `json:"payee_phone_number"`
	PayeeEmail           *string   `json:"payee_email"`
	Currency             *string   `json:"currency"`
	DueAmount            *float64  `json:"due_amount"`
	DiscountPercent      *float64  `json:"discount_percent"`
	TaxPercent           *float64  `json:"tax_percent"`
	PayeeDueDate         *DateOnly `json:"payee_due_date"`
	PayeePaymentStatus   *Status   `json:"payee_payment_status"`
}

// ApplyTo merges the request over an existing record: incoming fields win,
// absent fields are preserved.
func (r UpdatePaymentRequest) ApplyTo(rec *PaymentRecord) {
	if r.PayeeFirstName != nil {
		rec.PayeeFirstName = *r.PayeeFirstName
	}
	if r.PayeeLastName != nil {
		rec.PayeeLastName = *r.PayeeLastName
	}
	if r.PayeeAddressLine1 != nil {
		rec.PayeeAddressLine1 = *r.PayeeAddressLine1
	}
	if r.PayeeAddressLine2 != nil {
		rec.PayeeAddressLine2 = *r.PayeeAddressLine2
	}
	if r.PayeeCity != nil {
		rec.PayeeCity = *r.PayeeCity
	}
	if r.PayeeCountry != nil {
		rec.PayeeCountry = *r.PayeeCountry
	}
	if r.PayeeProvinceOrState != nil {
		rec.PayeeProvinceOrState = *r.PayeeProvinceOrState
	}
	if r.PayeePostalCode != nil {
		rec.PayeePostalCode = *r.PayeePostalCode
	}
	if r.PayeePhoneNumber != nil {
		rec.PayeePhoneNumber = *r.PayeePhoneNumber
	}
	if r.PayeeEmail != nil {
		rec.PayeeEmail = *r.PayeeEmail
	}
	if r.Currency != nil {
		rec.Currency = *r.Currency
	}
	if r.DueAmount != nil {
		rec.DueAmount = *r.DueAmount
	}
	if r.DiscountPercent != nil {
		rec.DiscountPercent = *r.DiscountPercent
	}
	if r.TaxPercent != nil {
		rec.TaxPercent = *r.TaxPercent
	}
	if r.PayeeDueDate != nil {
		rec.PayeeDueDate = *r.PayeeDueDate
	}
	if r.PayeePaymentStatus != nil {
		rec.PayeePaymentStatus = *r.PayeePaymentStatus
	}
}
