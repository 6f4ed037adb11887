package payment

import (
	"sort"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListQuery is the search/filter/pagination request for the list endpoint.
type ListQuery struct {
	Search   string
	Status   Status
	Page     int
	PageSize int
}

// normalize applies the pagination defaults: page minimum 1, page size
// default 20 and clamped to 100. Clamping (rather than rejecting) keeps the
// list endpoint total, consistent with out-of-range pages yielding empty.
func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return q
}

// Compose orders, filters, searches and paginates the full record set.
// Returns the requested page and the total item count after filtering but
// before pagination. Records are expected to carry derived statuses already.
func Compose(records []PaymentRecord, q ListQuery) ([]PaymentRecord, int) {
	q = q.normalize()

	ordered := make([]PaymentRecord, len(records))
	copy(ordered, records)
	// Stable: ties keep store order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PayeeAddedDateUTC.After(ordered[j].PayeeAddedDateUTC)
	})

	filtered := ordered[:0]
	search := strings.ToLower(q.Search)
	for _, rec := range ordered {
		if q.Status != "" && rec.PayeePaymentStatus != q.Status {
			continue
		}
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		filtered = append(filtered, rec)
	}

	total := len(filtered)
	start := (q.Page - 1) * q.PageSize
	if start >= total {
		return []PaymentRecord{}, total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total
}

// matchesSearch reports a case-insensitive substring hit on first name,
// last name or email. search must already be lowercased.
func matchesSearch(rec PaymentRecord, search string) bool {
	return strings.Contains(strings.ToLower(rec.PayeeFirstName), search) ||
		strings.Contains(strings.ToLower(rec.PayeeLastName), search) ||
		strings.Contains(strings.ToLower(rec.PayeeEmail), search)
}
