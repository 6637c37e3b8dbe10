package payroll

import "context"

type PayrollService interface {
	CreateMapping(ctx context.Context, req CreateMappingRequest) (DayTypeMapping, error)
	ListMappings(ctx context.Context, companyID string) ([]DayTypeMapping, error)

	// GenerateSummaries recomputes every active employee's summary for the
	// period. Any unmapped status aborts the whole run.
	GenerateSummaries(ctx context.Context, req GenerateSummaryRequest) ([]SummaryResponse, error)
	ListSummaries(ctx context.Context, req GenerateSummaryRequest) ([]SummaryResponse, error)
}
