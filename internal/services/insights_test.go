package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/luna/internal/models"
)

func TestBuildInsightsRequiresTwoLogs(t *testing.T) {
	t.Parallel()

	data := cycleDataWith(closedLog(t, "2024-01-01", "2024-01-05"))
	if _, err := BuildInsights(data, 3); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestBuildInsightsSummarizesHistory(t *testing.T) {
	t.Parallel()

	data := cycleDataWith(
		closedLog(t, "2024-01-01", "2024-01-05"),
		closedLog(t, "2024-01-21", "2024-01-23"),
		openLog(t, "2024-03-01"),
	)

	insights, err := BuildInsights(data, 0)
	if err != nil {
		t.Fatalf("BuildInsights returned error: %v", err)
	}
	if insights.AverageCycleLength != 30 {
		t.Fatalf("expected average cycle 30, got %d", insights.AverageCycleLength)
	}
	if insights.Regularity != models.RegularityIrregular {
		t.Fatalf("expected irregular cycles (20 vs 40), got %q", insights.Regularity)
	}
	if insights.CycleLengthNormality != models.NormalityNormal {
		t.Fatalf("expected normal cycle length, got %q", insights.CycleLengthNormality)
	}
	if insights.AveragePeriodLength != 4 || insights.PeriodLengthNormality != models.NormalityNormal {
		t.Fatalf("expected normal 4-day periods, got %d %q", insights.AveragePeriodLength, insights.PeriodLengthNormality)
	}
	if len(insights.UpcomingPeriods) != 3 {
		t.Fatalf("expected default of 3 upcoming periods, got %d", len(insights.UpcomingPeriods))
	}
	if ISODate(insights.UpcomingPeriods[0]) != "2024-03-31" || ISODate(insights.UpcomingPeriods[2]) != "2024-05-30" {
		t.Fatalf("unexpected upcoming periods %s..%s", ISODate(insights.UpcomingPeriods[0]), ISODate(insights.UpcomingPeriods[2]))
	}
}
