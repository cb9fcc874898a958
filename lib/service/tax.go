package service

import (
	"github.com/getartha/ledgerhub/db/models"
)

// TaxBreakdown holds the per-component GST amounts for one bill line,
// in minor units. Intra-state supplies carry CGST+SGST, inter-state
// supplies carry IGST; cess applies to both.
type TaxBreakdown struct {
	CGST int64
	SGST int64
	IGST int64
	Cess int64
}

func (t TaxBreakdown) Total() int64 {
	return t.CGST + t.SGST + t.IGST + t.Cess
}

// taxFromBps computes amount * rate where rate is in basis points,
// rounding half up. Amounts are never negative here.
func taxFromBps(amount, rateBps int64) int64 {
	return (amount*rateBps + 5000) / 10000
}

// intraStateRates resolves the CGST/SGST component rates of a tax code.
// Tax codes that only carry a headline rate fall back to an even split:
// rate/2 to CGST and the remainder to SGST, so an odd basis-point rate
// never loses a unit.
func intraStateRates(tc *models.TaxCode) (cgstBps, sgstBps int64) {
	if tc.CGSTRateBps > 0 || tc.SGSTRateBps > 0 {
		return tc.CGSTRateBps, tc.SGSTRateBps
	}
	cgstBps = tc.RateBps / 2
	sgstBps = tc.RateBps - cgstBps
	return cgstBps, sgstBps
}

// interStateRate resolves the IGST rate, defaulting to the headline rate.
func interStateRate(tc *models.TaxCode) int64 {
	if tc.IGSTRateBps > 0 {
		return tc.IGSTRateBps
	}
	return tc.RateBps
}

// ComputeLineTax computes the tax breakdown for a line's net amount.
// A nil tax code means the line is untaxed.
func ComputeLineTax(netAmount int64, tc *models.TaxCode, interstate bool) TaxBreakdown {
	breakdown := TaxBreakdown{}
	if tc == nil || netAmount <= 0 {
		return breakdown
	}

	if interstate {
		breakdown.IGST = taxFromBps(netAmount, interStateRate(tc))
	} else {
		cgstBps, sgstBps := intraStateRates(tc)
		breakdown.CGST = taxFromBps(netAmount, cgstBps)
		breakdown.SGST = taxFromBps(netAmount, sgstBps)
	}
	breakdown.Cess = taxFromBps(netAmount, tc.CessRateBps)

	return breakdown
}
