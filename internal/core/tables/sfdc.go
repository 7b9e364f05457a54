package tables

import (
	"github.com/JonMunkholm/vtable/internal/core"
	"github.com/JonMunkholm/vtable/internal/layout"
)

func init() {
	registerSfdcCustomers()
	registerSfdcPriceBook()
	registerSfdcOppDetail()
}

func registerSfdcCustomers() {
	core.Register(core.TableView{
		Info: core.TableInfo{
			Key:         "sfdc_customers",
			Group:       "SFDC",
			Label:       "Customers",
			Description: "Salesforce accounts with last activity",
		},
		Columns: []layout.ColumnSpec{
			selectColumn(),
			col("account_id_casesafe", "Account ID", "20%"),
			col("account_name", "Account Name", "40%"),
			col("last_activity", "Last Activity", "15%"),
			col("type", "Type", ""),
		},
	})
}

func registerSfdcPriceBook() {
	core.Register(core.TableView{
		Info: core.TableInfo{
			Key:         "sfdc_price_book",
			Group:       "SFDC",
			Label:       "Price Book",
			Description: "List prices per product",
		},
		Columns: []layout.ColumnSpec{
			col("price_book_name", "Price Book", "180px"),
			col("product_name", "Product", "260px"),
			col("product_code", "Code", "120px"),
			col("product_id_casesafe", "Product ID", "180px"),
			col("list_price", "List Price", "110px"),
		},
	})
}

func registerSfdcOppDetail() {
	core.Register(core.TableView{
		Info: core.TableInfo{
			Key:         "sfdc_opp_detail",
			Group:       "SFDC",
			Label:       "Opp Detail",
			Description: "Opportunity product lines",
		},
		Columns: []layout.ColumnSpec{
			selectColumn(),
			col("opportunity_id", "Opportunity ID", "160px"),
			col("opportunity_name", "Opportunity", "280px"),
			col("account_name", "Account", "220px"),
			col("close_date", "Close Date", "110px"),
			col("booked_date", "Booked Date", "110px"),
			col("fiscal_period", "Fiscal Period", "100px"),
			col("product_name", "Product", "220px"),
			col("product_code", "Code", "100px"),
			col("quantity", "Qty", "70px"),
			col("sales_price", "Sales Price", "110px"),
			col("total_price", "Total Price", "120px"),
			col("start_date", "Start", "110px"),
			col("end_date", "End", "110px"),
			col("term_in_months", "Term", "70px"),
			col("deployment_type", "Deployment", ""),
			col("active_product", "Active", ""),
		},
	})
}
