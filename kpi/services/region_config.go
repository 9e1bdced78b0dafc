package services

// RegionConfig holds the fixed region/circle geography and the allowed
// Work Done by values. It is constructed once at startup and passed by
// reference into both the ingestion and update validators; nothing mutates
// it after construction.
type RegionConfig struct {
	ValidRegions    map[string]struct{}
	CirclesByRegion map[string][]string
	ValidWorkDoneBy map[string]struct{}
}

func DefaultRegionConfig() *RegionConfig {
	return &RegionConfig{
		ValidRegions: map[string]struct{}{
			"East": {}, "West": {}, "North": {}, "South": {},
		},
		CirclesByRegion: map[string][]string{
			"North": {"DL", "UPW", "UPE"},
			"East":  {"OD", "WB", "BH", "NESA", "ASM"},
			"West":  {"MPCG", "MH", "MUM", "RAJ", "GJ"},
			"South": {"TN", "APTL", "KL", "KK"},
		},
		ValidWorkDoneBy: map[string]struct{}{
			"Partner": {}, "RVS": {},
		},
	}
}

// CircleValid reports whether circle belongs to region's allow-list,
// case-sensitive on the canonical codes.
func (c *RegionConfig) CircleValid(region, circle string) bool {
	for _, v := range c.CirclesByRegion[region] {
		if v == circle {
			return true
		}
	}
	return false
}

// Regions returns the region names in a stable order for reporting.
func (c *RegionConfig) Regions() []string {
	return []string{"East", "West", "North", "South"}
}
