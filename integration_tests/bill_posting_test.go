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

type BillPostingTestSuite struct {
	TestSuite
	service  *service.LedgerhubService
	fixtures *testFixtures
}

func (suite *BillPostingTestSuite) SetupSuite() {
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

func (suite *BillPostingTestSuite) TearDownSuite() {
	if err := clearLedger(suite.service); err != nil {
		log.Fatalf("Error clearing tables: %v", err)
	}
}

func (suite *BillPostingTestSuite) draftBill() *service.BillParams {
	return &service.BillParams{
		VendorID: suite.fixtures.vendorID,
		BillDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Memo:     "March office supplies",
		Lines: []service.BillLineParams{
			{
				Description:      "printer paper",
				ExpenseAccountID: suite.fixtures.expenseAccountID,
				TaxCodeID:        suite.fixtures.taxCodeID,
				Quantity:         1,
				UnitPrice:        1000,
			},
		},
	}
}

func (suite *BillPostingTestSuite) TestCreateBillComputesTotals() {
	bill := suite.createBillReq(suite.draftBill())

	assert.Equal(suite.T(), common.BillStatusDraft, bill.Status)
	assert.Equal(suite.T(), int64(1000), bill.Subtotal)
	assert.Equal(suite.T(), int64(90), bill.CGSTAmount)
	assert.Equal(suite.T(), int64(90), bill.SGSTAmount)
	assert.Equal(suite.T(), int64(0), bill.IGSTAmount)
	assert.Equal(suite.T(), int64(1180), bill.Total)
	assert.NotEmpty(suite.T(), bill.Number)
}

func (suite *BillPostingTestSuite) TestPostBillWritesBalancedEntry() {
	bill := suite.createBillReq(suite.draftBill())

	posted := suite.postBillReq(bill.ID)
	assert.Equal(suite.T(), common.BillStatusPosted, posted.Status)
	assert.Equal(suite.T(), int64(1180), posted.BalanceDue)
	assert.NotZero(suite.T(), posted.JournalEntryID)

	entry := suite.getJournalEntryReq(posted.JournalEntryID)
	assert.Equal(suite.T(), common.JournalStatePosted, entry.State)
	assert.Equal(suite.T(), common.JournalSourceBill, entry.SourceType)
	assert.Equal(suite.T(), bill.ID, entry.SourceID)
	assert.Len(suite.T(), entry.Lines, 4)

	var debits, credits int64
	for _, line := range entry.Lines {
		debits += line.Debit
		credits += line.Credit
	}
	assert.Equal(suite.T(), int64(1180), debits)
	assert.Equal(suite.T(), int64(1180), credits)
}

func (suite *BillPostingTestSuite) TestDoublePostIsRejected() {
	bill := suite.createBillReq(suite.draftBill())
	suite.postBillReq(bill.ID)

	errResp := suite.postBillReqError(bill.ID, http.StatusConflict)
	assert.Equal(suite.T(), "ALREADY_POSTED", errResp.Err.Code)
}

func (suite *BillPostingTestSuite) TestPostBillWithoutLinesIsRejected() {
	params := suite.draftBill()
	params.Lines = nil
	bill := suite.createBillReq(params)

	errResp := suite.postBillReqError(bill.ID, http.StatusBadRequest)
	assert.Equal(suite.T(), "VALIDATION_ERROR", errResp.Err.Code)
}

func (suite *BillPostingTestSuite) TestPostZeroTotalBillIsRejected() {
	params := suite.draftBill()
	params.Lines = []service.BillLineParams{
		{
			Description:      "free sample",
			ExpenseAccountID: suite.fixtures.expenseAccountID,
			Quantity:         1,
			UnitPrice:        0,
		},
	}
	bill := suite.createBillReq(params)
	assert.Equal(suite.T(), int64(0), bill.Total)

	errResp := suite.postBillReqError(bill.ID, http.StatusBadRequest)
	assert.Equal(suite.T(), "VALIDATION_ERROR", errResp.Err.Code)
}

func (suite *BillPostingTestSuite) TestPostWithoutAPAccountIsRejected() {
	bill := suite.createBillReq(suite.draftBill())

	_, err := suite.service.DB.NewUpdate().Table("accounts").
		Set("active = ?", false).
		Where("system_tag = ?", common.AccountTagAccountsPayable).
		Exec(context.Background())
	assert.NoError(suite.T(), err)

	errResp := suite.postBillReqError(bill.ID, http.StatusBadRequest)
	assert.Equal(suite.T(), "NO_AP_ACCOUNT", errResp.Err.Code)

	// restore the control account for the remaining tests
	_, err = suite.service.DB.NewUpdate().Table("accounts").
		Set("active = ?", true).
		Where("system_tag = ?", common.AccountTagAccountsPayable).
		Exec(context.Background())
	assert.NoError(suite.T(), err)

	posted := suite.postBillReq(bill.ID)
	assert.Equal(suite.T(), common.BillStatusPosted, posted.Status)
}

func (suite *BillPostingTestSuite) TestPostUnknownBillIsNotFound() {
	errResp := suite.postBillReqError(99999999, http.StatusNotFound)
	assert.Equal(suite.T(), "NOT_FOUND", errResp.Err.Code)
}

func (suite *BillPostingTestSuite) TestLedgerReflectsPostedBill() {
	assert.NoError(suite.T(), clearTable(suite.service, "journal_lines"))
	assert.NoError(suite.T(), clearTable(suite.service, "journal_entries"))

	bill := suite.createBillReq(suite.draftBill())
	suite.postBillReq(bill.ID)

	ledger := suite.getLedgerReq(suite.fixtures.apAccountID)
	assert.Equal(suite.T(), int64(1180), ledger.Credits)
	assert.Equal(suite.T(), int64(0), ledger.Debits)
	// accounts payable carries a credit normal balance
	assert.Equal(suite.T(), int64(1180), ledger.Balance)
}

func TestBillPostingSuite(t *testing.T) {
	suite.Run(t, new(BillPostingTestSuite))
}
