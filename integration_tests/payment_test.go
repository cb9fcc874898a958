package integration_tests

import (
	"context"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/getartha/ledgerhub/common"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BillPaymentTestSuite struct {
	TestSuite
	service  *service.LedgerhubService
	fixtures *testFixtures
}

func (suite *BillPaymentTestSuite) SetupSuite() {
	svc, err := LedgerhubTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	if err = clearLedger(svc); err != nil {
		log.Fatalf("Error clearing tables: %v", err)
	}
	fixtures, err := createLedgerFixtures(svc)
	if err != nil {
		log.Fatalf("Error creating fixtures: %v", err)
	}
	suite.service = svc
	suite.fixtures = fixtures
	suite.echo = newTestEcho(svc)
}

func (suite *BillPaymentTestSuite) TearDownSuite() {
	if err := clearLedger(suite.service); err != nil {
		log.Fatalf("Error clearing tables: %v", err)
	}
}

// postedBill creates and posts a 1000 + 18% GST bill, total 1180.
func (suite *BillPaymentTestSuite) postedBill() int64 {
	bill := suite.createBillReq(&service.BillParams{
		VendorID: suite.fixtures.vendorID,
		BillDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Lines: []service.BillLineParams{
			{
				Description:      "consulting retainer",
				ExpenseAccountID: suite.fixtures.expenseAccountID,
				TaxCodeID:        suite.fixtures.taxCodeID,
				Quantity:         1,
				UnitPrice:        1000,
			},
		},
	})
	suite.postBillReq(bill.ID)
	return bill.ID
}

func (suite *BillPaymentTestSuite) TestFullPaymentSettlesBill() {
	billId := suite.postedBill()

	payment := suite.recordPaymentReq(&service.PaymentParams{
		BillID: billId,
		Amount: 1180,
		Method: "neft",
	})
	assert.Equal(suite.T(), billId, payment.BillID)
	assert.NotZero(suite.T(), payment.JournalEntryID)

	entry := suite.getJournalEntryReq(payment.JournalEntryID)
	assert.Equal(suite.T(), common.JournalSourcePayment, entry.SourceType)
	assert.Equal(suite.T(), payment.ID, entry.SourceID)
	assert.Len(suite.T(), entry.Lines, 2)

	bill := suite.getBillReq(billId)
	assert.Equal(suite.T(), common.BillStatusPaid, bill.Status)
	assert.Equal(suite.T(), int64(0), bill.BalanceDue)
}

func (suite *BillPaymentTestSuite) TestPartialPaymentLeavesBalance() {
	billId := suite.postedBill()

	suite.recordPaymentReq(&service.PaymentParams{
		BillID: billId,
		Amount: 500,
		Method: "upi",
	})

	bill := suite.getBillReq(billId)
	assert.Equal(suite.T(), common.BillStatusPartial, bill.Status)
	assert.Equal(suite.T(), int64(680), bill.BalanceDue)

	// settle the rest
	suite.recordPaymentReq(&service.PaymentParams{
		BillID: billId,
		Amount: 680,
		Method: "upi",
	})
	bill = suite.getBillReq(billId)
	assert.Equal(suite.T(), common.BillStatusPaid, bill.Status)
	assert.Equal(suite.T(), int64(0), bill.BalanceDue)
}

func (suite *BillPaymentTestSuite) TestTDSWithholdingSplitsCredit() {
	billId := suite.postedBill()

	payment := suite.recordPaymentReq(&service.PaymentParams{
		BillID:    billId,
		Amount:    1180,
		TDSAmount: 100,
		Method:    "neft",
		Reference: "UTR123456",
	})

	entry := suite.getJournalEntryReq(payment.JournalEntryID)
	assert.Len(suite.T(), entry.Lines, 3)

	var bankCredit, tdsCredit int64
	for _, line := range entry.Lines {
		switch line.AccountID {
		case suite.fixtures.bankAccountID:
			bankCredit = line.Credit
		case suite.fixtures.tdsAccountID:
			tdsCredit = line.Credit
		}
	}
	assert.Equal(suite.T(), int64(1080), bankCredit)
	assert.Equal(suite.T(), int64(100), tdsCredit)
}

func (suite *BillPaymentTestSuite) TestOverpaymentIsRejected() {
	billId := suite.postedBill()

	errResp := suite.recordPaymentReqError(&service.PaymentParams{
		BillID: billId,
		Amount: 2000,
		Method: "neft",
	}, http.StatusBadRequest)
	assert.Equal(suite.T(), "OVERPAYMENT", errResp.Err.Code)

	// nothing was written
	payments, err := suite.service.PaymentsForBill(context.Background(), billId)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), payments, 0)

	bill := suite.getBillReq(billId)
	assert.Equal(suite.T(), common.BillStatusPosted, bill.Status)
	assert.Equal(suite.T(), int64(1180), bill.BalanceDue)
}

func (suite *BillPaymentTestSuite) TestPaymentOnDraftBillIsRejected() {
	bill := suite.createBillReq(&service.BillParams{
		VendorID: suite.fixtures.vendorID,
		BillDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Lines: []service.BillLineParams{
			{
				Description:      "stationery",
				ExpenseAccountID: suite.fixtures.expenseAccountID,
				Quantity:         2,
				UnitPrice:        250,
			},
		},
	})

	errResp := suite.recordPaymentReqError(&service.PaymentParams{
		BillID: bill.ID,
		Amount: 500,
		Method: "cash",
	}, http.StatusBadRequest)
	assert.Equal(suite.T(), "NOT_POSTED", errResp.Err.Code)
}

func (suite *BillPaymentTestSuite) TestTDSExceedingAmountIsRejected() {
	billId := suite.postedBill()

	errResp := suite.recordPaymentReqError(&service.PaymentParams{
		BillID:    billId,
		Amount:    100,
		TDSAmount: 200,
		Method:    "neft",
	}, http.StatusBadRequest)
	assert.Equal(suite.T(), "VALIDATION_ERROR", errResp.Err.Code)
}

func TestBillPaymentSuite(t *testing.T) {
	suite.Run(t, new(BillPaymentTestSuite))
}
