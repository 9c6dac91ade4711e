package orderControllers

import "github.com/rkhasan/dhakastore-api/config"

// ShippingCost returns the flat delivery rate for a district: the
// discounted rate for the configured district (Dhaka by default), the
// standard rate everywhere else. Pure lookup, no carrier logic.
func ShippingCost(cfg config.ShippingConfig, district string) int64 {
	if district == cfg.DiscountedDistrict {
		return cfg.DiscountedRate
	}
	return cfg.StandardRate
}
