package tables

import (
	"github.com/JonMunkholm/vtable/internal/core"
	"github.com/JonMunkholm/vtable/internal/layout"
)

func init() {
	registerNsCustomers()
	registerNsSoDetail()
	registerNsInvoiceDetail()
}

func registerNsCustomers() {
	core.Register(core.TableView{
		Info: core.TableInfo{
			Key:         "ns_customers",
			Group:       "NS",
			Label:       "Customers",
			Description: "NetSuite customers with open balances",
		},
		Columns: []layout.ColumnSpec{
			selectColumn(),
			col("internal_id", "Internal ID", "90"),
			col("name", "Name", "220"),
			col("company_name", "Company", "220"),
			col("salesforce_id_io", "Salesforce ID", "160"),
			col("balance", "Balance", "110"),
			col("unbilled_orders", "Unbilled", "110"),
			col("overdue_balance", "Overdue", "110"),
			col("days_overdue", "Days Overdue", ""),
		},
	})
}

func registerNsSoDetail() {
	core.Register(core.TableView{
		Info: core.TableInfo{
			Key:         "ns_so_detail",
			Group:       "NS",
			Label:       "SO Detail",
			Description: "Sales order lines",
		},
		Columns: []layout.ColumnSpec{
			col("so_number", "SO #", "8%"),
			col("sfdc_opp_id", "Opportunity ID", "12%"),
			col("customer_project", "Customer / Project", "20%"),
			col("item_display_name", "Item", "20%"),
			col("document_date", "Date", "8%"),
			col("line_start_date", "Line Start", "8%"),
			col("line_end_date", "Line End", "8%"),
			col("quantity", "Qty", "5%"),
			col("unit_price", "Unit Price", "8%"),
			col("amount_gross", "Amount", "8%"),
			col("terms_days_till_net_due", "Terms", ""),
		},
	})
}

func registerNsInvoiceDetail() {
	core.Register(core.TableView{
		Info: core.TableInfo{
			Key:         "ns_invoice_detail",
			Group:       "NS",
			Label:       "Invoice Detail",
			Description: "Invoice lines with shipping destination",
		},
		Columns: []layout.ColumnSpec{
			selectColumn(),
			col("document_number", "Invoice #", "110px"),
			col("date", "Date", "100px"),
			col("date_due", "Due", "100px"),
			col("name", "Customer", "25%"),
			col("item", "Item", "20%"),
			col("qty", "Qty", "60px"),
			col("unit_price", "Unit Price", "100px"),
			col("amount", "Amount", "110px"),
			col("memo", "Memo", ""),
			col("shipping_address_state", "State", "70px"),
			col("shipping_address_country", "Country", ""),
		},
	})
}
