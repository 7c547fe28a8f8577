package domain

// ComputeAnalytics folds a user's complete scan history and favorite count
// into the derived aggregates. Recomputed in full on every request; cost is
// linear in history size.
func ComputeAnalytics(scans []ScanRecord, favoriteCount int) UserAnalytics {
	a := UserAnalytics{
		TotalScans:        len(scans),
		FavoriteCount:     favoriteCount,
		CategoriesScanned: map[string]int{},
		MonthlyScans:      map[string]int{},
	}
	for _, s := range scans {
		cat := s.Product.Category
		if cat == "" {
			cat = "Unknown"
		}
		a.CategoriesScanned[cat]++
		a.MonthlyScans[s.ScannedAt.Format("2006-01")]++
	}
	return a
}
