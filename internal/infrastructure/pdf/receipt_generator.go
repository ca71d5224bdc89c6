// Package pdf renders order receipts.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Karigarverse     │  Order number + Date            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUSTOMER: name + shipping address                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Item | Shop | Unit Price | Line Total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Tax / Shipping / Discount / TOTAL       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/karigarverse/karigarverse-api/internal/application/checkout"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 146, Green: 64, Blue: 14}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ checkout.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator renders receipts with Maroto v2.
type MarotoReceiptGenerator struct{}

func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateOrderReceipt renders the receipt and returns its bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(
	_ context.Context,
	order *entity.Order,
	items []*repository.OrderItemDetail,
	customerName string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Order Receipt "+order.OrderNumber, true).
		WithAuthor("Karigarverse", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order, customerName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: marketplace name (left), order number and date (right).
func headerRow(order *entity.Order) core.Row {
	date := order.CreatedAt.Format("02 Jan 2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("Karigarverse", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Handcrafted by artisans, delivered to you", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDER RECEIPT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: buyer name and shipping address.
func customerRow(order *entity.Order, customerName string) core.Row {
	addr := order.ShippingAddress
	addrLine := addr.Line1
	if addr.Line2 != "" {
		addrLine += ", " + addr.Line2
	}
	cityLine := fmt.Sprintf("%s, %s %s", addr.City, addr.State, addr.PostalCode)
	if addr.Country != "" {
		cityLine += ", " + addr.Country
	}

	return row.New(16).Add(
		col.New(12).Add(
			text.New("SHIP TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(addrLine+"   |   "+cityLine, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: item table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 4, align.Left),
		h("Shop", 3, align.Left),
		h("Unit Price", 2, align.Right),
		h("Line Total", 2, align.Right),
	)
}

// tableItemRows: one row per order line.
func tableItemRows(items []*repository.OrderItemDetail) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, d := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", d.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				d.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(d.ShopName, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"₹"+d.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"₹"+d.TotalPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: totals block aligned to the right.
func totalsRow(order *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(34).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Tax:"),
			label("Shipping:"),
			label("Discount:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("₹"+order.Subtotal.StringFixed(2)),
			value("₹"+order.TaxAmount.StringFixed(2)),
			value("₹"+order.ShippingCost.StringFixed(2)),
			value("-₹"+order.DiscountAmount.StringFixed(2)),
			grandValue("₹"+order.TotalAmount.StringFixed(2)),
		),
		col.New(3),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Thank you for supporting independent artisans. "+
				"Keep this receipt as proof of purchase.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2, Align: align.Center},
		),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
