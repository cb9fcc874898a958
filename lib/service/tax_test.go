package service

import (
	"testing"

	"github.com/getartha/ledgerhub/db/models"
	"github.com/stretchr/testify/assert"
)

var gst18 = &models.TaxCode{Code: "GST18", Name: "GST 18%", RateBps: 1800}

func TestIntraStateSplit(t *testing.T) {
	breakdown := ComputeLineTax(1000, gst18, false)

	assert.Equal(t, int64(90), breakdown.CGST)
	assert.Equal(t, int64(90), breakdown.SGST)
	assert.Equal(t, int64(0), breakdown.IGST)
	assert.Equal(t, int64(180), breakdown.Total())
}

func TestInterStateUsesIGST(t *testing.T) {
	breakdown := ComputeLineTax(1000, gst18, true)

	assert.Equal(t, int64(0), breakdown.CGST)
	assert.Equal(t, int64(0), breakdown.SGST)
	assert.Equal(t, int64(180), breakdown.IGST)
}

func TestExplicitComponentRatesWin(t *testing.T) {
	taxCode := &models.TaxCode{Code: "GST18X", RateBps: 1800, CGSTRateBps: 1000, SGSTRateBps: 800}
	breakdown := ComputeLineTax(1000, taxCode, false)

	assert.Equal(t, int64(100), breakdown.CGST)
	assert.Equal(t, int64(80), breakdown.SGST)
}

// odd headline rate: the fallback split gives rate/2 to CGST and the
// remainder to SGST, so nothing is lost
func TestOddRateFallbackSplit(t *testing.T) {
	taxCode := &models.TaxCode{Code: "GST0.25", RateBps: 25}
	cgstBps, sgstBps := intraStateRates(taxCode)

	assert.Equal(t, int64(12), cgstBps)
	assert.Equal(t, int64(13), sgstBps)
}

func TestCessAppliesToBothSupplies(t *testing.T) {
	taxCode := &models.TaxCode{Code: "GST28C", RateBps: 2800, CessRateBps: 1200}

	intra := ComputeLineTax(1000, taxCode, false)
	assert.Equal(t, int64(120), intra.Cess)
	assert.Equal(t, int64(400), intra.Total())

	inter := ComputeLineTax(1000, taxCode, true)
	assert.Equal(t, int64(120), inter.Cess)
	assert.Equal(t, int64(280), inter.IGST)
}

func TestRoundingHalfUp(t *testing.T) {
	// 18% of 3 = 0.54, rounds to 1
	assert.Equal(t, int64(1), taxFromBps(3, 1800))
	// 9% of 5 = 0.45, rounds to 0
	assert.Equal(t, int64(0), taxFromBps(5, 900))
	// 9% of 6 = 0.54 -> 1
	assert.Equal(t, int64(1), taxFromBps(6, 900))
}

func TestUntaxedLine(t *testing.T) {
	assert.Equal(t, TaxBreakdown{}, ComputeLineTax(1000, nil, false))
	assert.Equal(t, TaxBreakdown{}, ComputeLineTax(0, gst18, false))
}
