package filter

import (
	"strings"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

// Predicate accepts or rejects a single record
type Predicate func(domain.Record) bool

// DatePredicate accepts records whose anchor falls inside the inclusive range.
// Records without a usable timestamp are rejected whenever at least one bound
// is set.
func DatePredicate(r domain.DateRange) Predicate {
	if r.Unbounded() {
		return func(domain.Record) bool { return true }
	}

	return func(rec domain.Record) bool {
		anchor, ok := rec.Anchor()
		if !ok {
			return false
		}
		if r.From != nil && anchor.Before(*r.From) {
			return false
		}
		if r.To != nil && anchor.After(*r.To) {
			return false
		}
		return true
	}
}

// SpecialtyPredicate matches the record's department or specialty exactly
func SpecialtyPredicate(specialty string) Predicate {
	if specialty == domain.SpecialtyAll || specialty == "" {
		return func(domain.Record) bool { return true }
	}

	return func(rec domain.Record) bool {
		return rec.Category() == specialty
	}
}

// SearchPredicate does a case-insensitive substring match over the record's
// name, medical record number and clinician name
func SearchPredicate(query string) Predicate {
	if query == "" {
		return func(domain.Record) bool { return true }
	}

	needle := strings.ToLower(query)
	return func(rec domain.Record) bool {
		for _, field := range rec.SearchFields() {
			if field != "" && strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}

// Predicates returns the date, specialty and search predicates of spec
func Predicates(spec domain.FilterSpec) []Predicate {
	return []Predicate{
		DatePredicate(spec.DateRange),
		SpecialtyPredicate(spec.Specialty),
		SearchPredicate(spec.SearchQuery),
	}
}

// All combines predicates with a short-circuiting AND
func All(predicates ...Predicate) Predicate {
	return func(rec domain.Record) bool {
		for _, p := range predicates {
			if !p(rec) {
				return false
			}
		}
		return true
	}
}

// Apply keeps the records accepted by p, preserving input order
func Apply(records []domain.Record, p Predicate) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if p(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Filter is a stable filter of records by spec
func Filter(records []domain.Record, spec domain.FilterSpec) []domain.Record {
	return Apply(records, All(Predicates(spec)...))
}
