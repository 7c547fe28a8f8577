package domain

import (
	"testing"
	"time"
)

func TestComputeAnalytics(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	scans := []ScanRecord{
		{Product: Product{Category: "dairy"}, ScannedAt: month.AddDate(0, 0, 2)},
		{Product: Product{Category: "dairy"}, ScannedAt: month.AddDate(0, 0, 10)},
		{Product: Product{Category: "snack"}, ScannedAt: month.AddDate(0, 0, 20)},
	}

	a := ComputeAnalytics(scans, 1)

	if a.TotalScans != 3 || a.FavoriteCount != 1 {
		t.Errorf("totals = %d/%d", a.TotalScans, a.FavoriteCount)
	}
	if a.CategoriesScanned["dairy"] != 2 || a.CategoriesScanned["snack"] != 1 {
		t.Errorf("categories = %v", a.CategoriesScanned)
	}
	if a.MonthlyScans["2025-06"] != 3 {
		t.Errorf("monthly = %v", a.MonthlyScans)
	}
}

func TestComputeAnalyticsEmptyHistory(t *testing.T) {
	a := ComputeAnalytics(nil, 0)
	if a.TotalScans != 0 || len(a.CategoriesScanned) != 0 || len(a.MonthlyScans) != 0 {
		t.Errorf("got %+v", a)
	}
}

func TestComputeAnalyticsUnknownCategory(t *testing.T) {
	a := ComputeAnalytics([]ScanRecord{{ScannedAt: time.Now()}}, 0)
	if a.CategoriesScanned["Unknown"] != 1 {
		t.Errorf("categories = %v", a.CategoriesScanned)
	}
}
