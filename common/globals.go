package common

const (
	BillStatusDraft   = "draft"
	BillStatusPosted  = "posted"
	BillStatusPartial = "partial"
	BillStatusPaid    = "paid"

	JournalStateDraft  = "draft"
	JournalStatePosted = "posted"

	JournalSourceBill    = "bill"
	JournalSourcePayment = "payment"

	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeRevenue   = "revenue"
	AccountTypeExpense   = "expense"

	NormalBalanceDebit  = "debit"
	NormalBalanceCredit = "credit"

	// System tags locate the control accounts the journal poster needs.
	// At most one active account carries each tag.
	AccountTagAccountsPayable = "accounts_payable"
	AccountTagBank            = "bank"
	AccountTagCGSTInput       = "cgst_input"
	AccountTagSGSTInput       = "sgst_input"
	AccountTagIGSTInput       = "igst_input"
	AccountTagCessInput       = "cess_input"
	AccountTagTDSPayable      = "tds_payable"
)
