package seeds

// SeedAll provisions the district directory and, when demo is set, sample
// monthly metrics.
func SeedAll(demo bool) error {
	if err := SeedDistricts(); err != nil {
		return err
	}
	if demo {
		if err := SeedDemoMetrics(); err != nil {
			return err
		}
	}
	return nil
}
