package tables

import (
	"github.com/JonMunkholm/vtable/internal/core"
	"github.com/JonMunkholm/vtable/internal/layout"
)

func init() {
	registerAnrokTransactions()
}

func registerAnrokTransactions() {
	core.Register(core.TableView{
		Info: core.TableInfo{
			Key:         "anrok_transactions",
			Group:       "Anrok",
			Label:       "Transactions",
			Description: "Sales tax transactions by jurisdiction",
		},
		Columns: []layout.ColumnSpec{
			selectColumn(),
			col("transaction_id", "Transaction ID", "14%"),
			col("customer_name", "Customer", "18%"),
			col("invoice_date", "Invoice Date", "9%"),
			col("tax_date", "Tax Date", "9%"),
			col("transaction_currency", "Currency", "6%"),
			col("sales_amount", "Sales", "9%"),
			col("tax_amount", "Tax", "8%"),
			col("invoice_amount", "Invoice", "9%"),
			col("void", "Void", "5%"),
			col("customer_country_code", "Country", "6%"),
			col("jurisdictions", "Jurisdictions", ""),
		},
	})
}
