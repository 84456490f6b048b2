package valuation

import (
	"strings"

	"github.com/valora-ai/valora/internal/models"
)

// SelectMethodology picks the valuation approach for a company sector.
// Banks and insurers have no meaningful free cash flow, so anything in a
// financial sector is valued by the dividend discount model; every other
// sector, including an unclassified one, gets discounted cash flow.
func SelectMethodology(sector *string) models.Methodology {
	if sector == nil {
		return models.MethodologyDiscountedCashFlow
	}
	if strings.Contains(strings.ToLower(*sector), "financial") {
		return models.MethodologyDividendDiscount
	}
	return models.MethodologyDiscountedCashFlow
}
