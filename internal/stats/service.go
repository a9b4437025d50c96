// Package stats computes dashboard aggregates from persisted rows. Figures
// are recomputed on every call; nothing is cached or maintained incrementally.
package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/talentbridge/internhub/internal/errors"
	"github.com/talentbridge/internhub/internal/storage"
)

// Service reads aggregate figures from the store.
type Service struct {
	store storage.StatsStore
}

// NewService creates a stats service backed by the given store.
func NewService(store storage.StatsStore) *Service {
	return &Service{store: store}
}

// StudentStats is the student block of the overview.
type StudentStats struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"byStatus"`
	AverageProgress int            `json:"averageProgress"`
}

// CompanyStats is the company block of the overview. AverageRating is the
// mean over every Active company, unrated ones included.
type CompanyStats struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"byStatus"`
	AverageRating float64        `json:"averageRating"`
	TotalHired    int            `json:"totalHired"`
}

// InternshipStats is the internship block of the overview.
type InternshipStats struct {
	Total             int            `json:"total"`
	ByStatus          map[string]int `json:"byStatus"`
	TotalApplications int            `json:"totalApplications"`
	TotalSlots        int            `json:"totalSlots"`
	FilledSlots       int            `json:"filledSlots"`
	PlacementRate     float64        `json:"placementRate"`
}

// PaymentStats is the payment block of the overview. Sums are formatted to
// two decimals the way invoices display them.
type PaymentStats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	TotalPaid    string         `json:"totalPaid"`
	TotalPending string         `json:"totalPending"`
}

// Overview bundles the four stats blocks.
type Overview struct {
	Students    StudentStats    `json:"students"`
	Companies   CompanyStats    `json:"companies"`
	Internships InternshipStats `json:"internships"`
	Payments    PaymentStats    `json:"payments"`
}

// Students returns student totals with mean progress rounded to the nearest
// integer, zero when there are no students.
func (s *Service) Students(ctx context.Context) (StudentStats, error) {
	aggregates, err := s.store.StudentAggregates(ctx)
	if err != nil {
		return StudentStats{}, errors.Wrap(errors.CodeUnknown, "student stats", err)
	}
	result := StudentStats{
		Total:    aggregates.Total,
		ByStatus: statusCounts(aggregates.ByStatus),
	}
	if aggregates.Total > 0 {
		result.AverageProgress = int(math.Round(float64(aggregates.ProgressSum) / float64(aggregates.Total)))
	}
	return result, nil
}

// Companies returns company totals with the mean rating over all active
// companies rounded to one decimal, zero when none are active.
func (s *Service) Companies(ctx context.Context) (CompanyStats, error) {
	aggregates, err := s.store.CompanyAggregates(ctx)
	if err != nil {
		return CompanyStats{}, errors.Wrap(errors.CodeUnknown, "company stats", err)
	}
	result := CompanyStats{
		Total:      aggregates.Total,
		ByStatus:   statusCounts(aggregates.ByStatus),
		TotalHired: aggregates.TotalHired,
	}
	if aggregates.ActiveCount > 0 {
		result.AverageRating = roundTo(aggregates.ActiveRatingSum/float64(aggregates.ActiveCount), 1)
	}
	return result, nil
}

// Internships returns internship totals with the placement rate
// (filled/total slots) as a percentage rounded to one decimal, zero when no
// slots exist.
func (s *Service) Internships(ctx context.Context) (InternshipStats, error) {
	aggregates, err := s.store.InternshipAggregates(ctx)
	if err != nil {
		return InternshipStats{}, errors.Wrap(errors.CodeUnknown, "internship stats", err)
	}
	result := InternshipStats{
		Total:             aggregates.Total,
		ByStatus:          statusCounts(aggregates.ByStatus),
		TotalApplications: aggregates.TotalApplications,
		TotalSlots:        aggregates.TotalSlots,
		FilledSlots:       aggregates.FilledSlots,
	}
	if aggregates.TotalSlots > 0 {
		result.PlacementRate = roundTo(float64(aggregates.FilledSlots)/float64(aggregates.TotalSlots)*100, 1)
	}
	return result, nil
}

// Payments returns payment totals with the paid and pending sums formatted
// to two decimals.
func (s *Service) Payments(ctx context.Context) (PaymentStats, error) {
	aggregates, err := s.store.PaymentAggregates(ctx)
	if err != nil {
		return PaymentStats{}, errors.Wrap(errors.CodeUnknown, "payment stats", err)
	}
	return PaymentStats{
		Total:        aggregates.Total,
		ByStatus:     statusCounts(aggregates.ByStatus),
		TotalPaid:    fmt.Sprintf("%.2f", aggregates.PaidSum),
		TotalPending: fmt.Sprintf("%.2f", aggregates.PendingSum),
	}, nil
}

// OverviewAll returns the four blocks in one call.
func (s *Service) OverviewAll(ctx context.Context) (Overview, error) {
	students, err := s.Students(ctx)
	if err != nil {
		return Overview{}, err
	}
	companies, err := s.Companies(ctx)
	if err != nil {
		return Overview{}, err
	}
	internships, err := s.Internships(ctx)
	if err != nil {
		return Overview{}, err
	}
	payments, err := s.Payments(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Students:    students,
		Companies:   companies,
		Internships: internships,
		Payments:    payments,
	}, nil
}

func statusCounts[K ~string](byStatus map[K]int) map[string]int {
	counts := make(map[string]int, len(byStatus))
	for status, count := range byStatus {
		counts[string(status)] = count
	}
	return counts
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
