package usecase

import (
	"context"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

type DashboardOutput struct {
	TotalLeads    int64                     `json:"totalLeads"`
	ThisMonth     int64                     `json:"thisMonth"`
	LastMonth     int64                     `json:"lastMonth"`
	GrowthPercent float64                   `json:"growthPercent"`
	ThisWeek      int64                     `json:"thisWeek"`
	ByStatus      map[string]int64          `json:"byStatus"`
	TopServices   []entity.ServiceTypeCount `json:"topServices"`
	RecentLeads   []entity.Lead             `json:"recentLeads"`
}

// DashboardCache fronts the aggregate query; a nil cache disables it.
type DashboardCache interface {
	Get(ctx context.Context) (*DashboardOutput, bool)
	Set(ctx context.Context, out *DashboardOutput)
}

type DashboardUseCase struct {
	Repo  entity.LeadRepositoryInterface
	Cache DashboardCache
}

func NewDashboardUseCase(repo entity.LeadRepositoryInterface, cache DashboardCache) *DashboardUseCase {
	return &DashboardUseCase{Repo: repo, Cache: cache}
}

func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	if uc.Cache != nil {
		if cached, ok := uc.Cache.Get(ctx); ok {
			return cached, nil
		}
	}

	stats, err := uc.Repo.Stats(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to aggregate leads: " + err.Error(),
		}
	}

	out := &DashboardOutput{
		TotalLeads:    stats.Total,
		ThisMonth:     stats.ThisMonth,
		LastMonth:     stats.LastMonth,
		GrowthPercent: GrowthPercent(stats.ThisMonth, stats.LastMonth),
		ThisWeek:      stats.ThisWeek,
		ByStatus:      stats.ByStatus,
		TopServices:   stats.ByServiceType,
		RecentLeads:   stats.RecentLeads,
	}

	if uc.Cache != nil {
		uc.Cache.Set(ctx, out)
	}

	return out, nil
}

// GrowthPercent is month-over-month growth. A zero previous month with
// any current volume reads as 100% rather than a division blowup.
func GrowthPercent(thisMonth, lastMonth int64) float64 {
	if lastMonth == 0 {
		if thisMonth > 0 {
			return 100
		}
		return 0
	}
	return float64(thisMonth-lastMonth) / float64(lastMonth) * 100
}
