package transport

import (
	cache "github.com/SporkHubr/echo-http-cache"
	"github.com/getartha/ledgerhub/controllers"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.LedgerhubService, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc, cacheClient *cache.Client) {
	accountCtrl := controllers.NewAccountController(svc)
	taxCodeCtrl := controllers.NewTaxCodeController(svc)
	vendorCtrl := controllers.NewVendorController(svc)
	billCtrl := controllers.NewBillController(svc)
	paymentCtrl := controllers.NewPaymentController(svc)
	journalCtrl := controllers.NewJournalController(svc)

	api := e.Group("/api", logMw)

	// chart of accounts and tax codes are setup data, writes need the admin token
	api.POST("/accounts", accountCtrl.CreateAccount, adminMw)
	api.GET("/accounts", accountCtrl.ListAccounts, cacheClient.Middleware())
	api.POST("/accounts/:id/deactivate", accountCtrl.DeactivateAccount, adminMw)
	api.GET("/accounts/:id/ledger", accountCtrl.GetLedger)
	api.POST("/tax-codes", taxCodeCtrl.CreateTaxCode, adminMw)
	api.GET("/tax-codes", taxCodeCtrl.ListTaxCodes, cacheClient.Middleware())

	api.POST("/vendors", vendorCtrl.CreateVendor)
	api.GET("/vendors", vendorCtrl.ListVendors)
	api.GET("/vendors/:id", vendorCtrl.GetVendor)
	api.POST("/vendors/:id/deactivate", vendorCtrl.DeactivateVendor)

	api.POST("/bills", billCtrl.CreateBill)
	api.GET("/bills", billCtrl.ListBills)
	api.GET("/bills/:id", billCtrl.GetBill)
	api.PUT("/bills/:id", billCtrl.UpdateBill)
	api.POST("/bills/:id/post", billCtrl.PostBill, strictRateLimitMiddleware)

	api.POST("/bill-payments", paymentCtrl.RecordPayment, strictRateLimitMiddleware)
	api.GET("/bills/:id/payments", paymentCtrl.ListBillPayments)

	api.GET("/journal-entries", journalCtrl.ListJournalEntries)
	api.GET("/journal-entries/:id", journalCtrl.GetJournalEntry)
}
