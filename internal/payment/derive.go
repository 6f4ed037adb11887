package payment

import "time"

// ComputeTotalDue applies the due-amount formula:
//
//	total = due - due*discount/100 + due*tax/100
//
// The result is not clamped; a discount above 100% legitimately yields a
// negative total and callers must treat it as valid output.
func ComputeTotalDue(dueAmount, discountPercent, taxPercent float64) float64 {
	return dueAmount - dueAmount*discountPercent/100 + dueAmount*taxPercent/100
}

// DeriveStatus classifies a record against today's UTC calendar date.
// Completed is sticky and never recomputed. A due date equal to today is
// due_now, a past one is overdue, and a future one leaves the current
// status unchanged rather than forcing it back to pending.
func DeriveStatus(current Status, due DateOnly, today time.Time) Status {
	if current == StatusCompleted {
		return current
	}
	if due.IsZero() {
		return current
	}
	t := Date(today)
	switch {
	case due.Equal(t.Time):
		return StatusDueNow
	case due.Before(t.Time):
		return StatusOverdue
	default:
		return current
	}
}

// Derive recomputes the mutable derived fields in place. Read paths call it
// without persisting; update paths persist the result.
func (p *PaymentRecord) Derive(now time.Time) {
	p.PayeePaymentStatus = DeriveStatus(p.PayeePaymentStatus, p.PayeeDueDate, now)
	p.TotalDue = ComputeTotalDue(p.DueAmount, p.DiscountPercent, p.TaxPercent)
}
