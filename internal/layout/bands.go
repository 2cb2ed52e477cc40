package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invoicer/internal/format"
	"invoicer/pkg/models"
)

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func (r *run) headerBand() error {
	invoiceDate, err := format.FormatDate(r.inv.InvoiceDate)
	if err != nil {
		return fmt.Errorf("layout: invoice date: %w", err)
	}
	dueDate, err := format.FormatDate(r.inv.DueDate)
	if err != nil {
		return fmt.Errorf("layout: due date: %w", err)
	}

	x, w := r.g.Margin, r.g.UsableWidth()
	half := w / 2

	// Long invoice numbers wrap inside the right half, clear of the title.
	block := r.wrap("Invoice No: "+r.inv.InvoiceNumber, half, r.bold())
	block = append(block,
		line{text: "Invoice Date: " + invoiceDate, style: r.regular()},
		line{text: "Due Date: " + dueDate, style: r.regular()},
	)

	dividerAt := max(titleHeight, float64(len(block))*r.g.LineHeight) + headerDividerGap
	if err := r.ensure(dividerAt+headerBottomGap, "header band"); err != nil {
		return err
	}

	title := Style{Weight: Bold, Size: r.g.TitleFontSize, Color: Accent, Align: AlignLeft}
	r.rec.PlaceText(x, r.y, half, titleHeight, r.e.title, title)
	r.drawLines(block, x+half, r.y, half, AlignRight)

	divider := r.y + dividerAt
	r.rec.DrawLine(x, divider, x+w, divider, Style{Color: Accent, LineWidth: 1})

	r.y = divider + headerBottomGap
	return nil
}

// partyBand draws issuer and buyer side by side. Each side wraps on its own;
// the band is as tall as the taller side.
func (r *run) partyBand() error {
	colW := (r.g.UsableWidth() - partyGutter) / 2

	left := r.issuerLines(colW)
	right := r.buyerLines(colW)

	h := float64(max(len(left), len(right))) * r.g.LineHeight
	if err := r.ensure(h, "party band"); err != nil {
		return err
	}

	r.drawLines(left, r.g.Margin, r.y, colW, AlignLeft)
	r.drawLines(right, r.g.Margin+colW+partyGutter, r.y, colW, AlignLeft)

	r.y += h + bandGap
	return nil
}

func (r *run) issuerLines(w float64) []line {
	p := r.issuer

	var lines []line
	if present(p.Name) {
		lines = append(lines, r.wrap(p.Name, w, r.bold())...)
	}
	if present(p.Address) {
		lines = append(lines, r.wrap(p.Address, w, r.regular())...)
	}
	if present(p.Phone) {
		lines = append(lines, r.wrap("Phone: "+p.Phone, w, r.regular())...)
	}
	if present(p.Email) {
		lines = append(lines, r.wrap("Email: "+p.Email, w, r.regular())...)
	}
	if present(p.TaxID) {
		lines = append(lines, r.wrap("GSTIN: "+p.TaxID, w, r.regular())...)
	}
	return lines
}

func (r *run) buyerLines(w float64) []line {
	lines := []line{{text: "Bill To:", style: r.bold()}}
	lines = append(lines, r.wrap(r.inv.Vendor, w, r.bold())...)
	lines = append(lines, line{text: "Ship To:", style: r.bold()})
	lines = append(lines, r.wrap(r.address, w, r.regular())...)
	return lines
}

func (r *run) purchaseOrderBand() error {
	if !r.inv.HasPurchaseOrder() {
		return nil
	}
	po := r.inv.PurchaseOrder

	var poDate string
	if present(po.Date) {
		d, err := format.FormatDate(po.Date)
		if err != nil {
			return fmt.Errorf("layout: purchase order date: %w", err)
		}
		poDate = "PO Date: " + d
	}

	if err := r.ensure(poBandHeight, "purchase order band"); err != nil {
		return err
	}

	x, w, pad := r.g.Margin, r.g.UsableWidth(), r.g.CellPadding
	r.rec.DrawRect(x, r.y, w, poBandHeight, r.rule())

	textY := r.y + (poBandHeight-r.g.LineHeight)/2
	r.rec.PlaceText(x+pad, textY, w/2-pad, r.g.LineHeight, "PO Number: "+po.Number, r.bold())
	if poDate != "" {
		st := r.regular()
		st.Align = AlignRight
		r.rec.PlaceText(x+w/2, textY, w/2-pad, r.g.LineHeight, poDate, st)
	}

	r.y += poBandHeight + bandGap
	return nil
}

// tableRow is a measured line item, ready to draw.
type tableRow struct {
	desc   []line
	cells  [ColumnCount]string
	height float64
	item   models.LineItem
}

func (r *run) measureRow(i int, item models.LineItem) (tableRow, error) {
	descW := r.g.Columns[ColDescription] - 2*r.g.CellPadding
	row := tableRow{
		desc: r.wrap(item.Particulars, descW, r.regular()),
		item: item,
	}
	row.height = max(float64(len(row.desc))*r.g.LineHeight, r.g.MinRowHeight)

	if row.height+r.g.HeaderRowHeight > r.g.Limit()-r.g.Top() {
		return row, NewLayoutError("Layout", ErrContentTooTall,
			fmt.Sprintf("line item %d needs %.1fpt", i+1, row.height))
	}

	amounts := []struct {
		col    int
		amount decimal.Decimal
	}{
		{ColUnitPrice, item.UnitPrice()},
		{ColTax, item.TaxAmount()},
		{ColLineTotal, item.LineTotal},
	}
	for _, a := range amounts {
		s, err := format.FormatAmount(a.amount)
		if err != nil {
			return row, fmt.Errorf("layout: line item %d %s: %w", i+1, ColumnLabels[a.col], err)
		}
		row.cells[a.col] = s
	}
	row.cells[ColCode] = strings.TrimSpace(item.Code)
	row.cells[ColQuantity] = strconv.Itoa(item.Quantity)

	return row, nil
}

// lineItemsTable draws the header row and one row per line item, breaking
// pages between rows. Each page segment of the table gets its own border box.
func (r *run) lineItemsTable() error {
	rows := make([]tableRow, 0, len(r.inv.LineItems))
	for i, item := range r.inv.LineItems {
		row, err := r.measureRow(i, item)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	if err := r.ensure(r.g.HeaderRowHeight+rows[0].height, "table header"); err != nil {
		return err
	}
	r.tableHeader()

	for _, row := range rows {
		if r.y+row.height > r.g.Limit() {
			r.closeSegment()
			r.newPage()
			r.tableHeader()
		}
		r.drawRow(row)
		r.subtotal = r.subtotal.Add(row.item.BasicAmount)
		r.y += row.height
	}
	r.closeSegment()

	r.y += bandGap
	return nil
}

func (r *run) tableHeader() {
	top, hh, pad := r.y, r.g.HeaderRowHeight, r.g.CellPadding
	r.segmentTop = top

	r.rec.DrawRect(r.g.Margin, top, r.g.TableWidth(), hh, Style{Color: HeaderFill, Fill: true})
	for i, label := range ColumnLabels {
		st := r.bold()
		st.Align = columnAlign[i]
		r.rec.PlaceText(r.g.ColumnX(i)+pad, top+(hh-r.g.LineHeight)/2, r.g.Columns[i]-2*pad, r.g.LineHeight, label, st)
	}
	r.columnRules(top, top+hh)

	r.y += hh
}

func (r *run) drawRow(row tableRow) {
	top, pad := r.y, r.g.CellPadding

	descTop := top + (row.height-float64(len(row.desc))*r.g.LineHeight)/2
	r.drawLines(row.desc, r.g.ColumnX(ColDescription)+pad, descTop, r.g.Columns[ColDescription]-2*pad, AlignLeft)

	cellTop := top + (row.height-r.g.LineHeight)/2
	for i := ColCode; i < ColumnCount; i++ {
		if row.cells[i] == "" {
			continue
		}
		st := r.regular()
		st.Align = columnAlign[i]
		r.rec.PlaceText(r.g.ColumnX(i)+pad, cellTop, r.g.Columns[i]-2*pad, r.g.LineHeight, row.cells[i], st)
	}

	r.columnRules(top, top+row.height)
	r.rec.DrawLine(r.g.Margin, top+row.height, r.g.Margin+r.g.TableWidth(), top+row.height, r.rule())
}

// columnRules draws the inner column separators between top and bottom.
func (r *run) columnRules(top, bottom float64) {
	for i := 1; i < ColumnCount; i++ {
		x := r.g.ColumnX(i)
		r.rec.DrawLine(x, top, x, bottom, r.rule())
	}
}

// closeSegment borders the part of the table drawn on the current page.
func (r *run) closeSegment() {
	r.rec.DrawRect(r.g.Margin, r.segmentTop, r.g.TableWidth(), r.y-r.segmentTop, Style{Color: Black, LineWidth: 0.8})
}

type summaryEntry struct {
	label string
	value string
	style Style
}

// summaryBand prints the totals box. Tax is the residual of the total after
// subtotal and transportation, not a recomputation from the GST rate.
func (r *run) summaryBand() error {
	transport := r.inv.TransportationCost
	tax := r.inv.TotalCost.Sub(r.subtotal).Sub(transport)

	subtotal, err := r.money(r.subtotal, "subtotal")
	if err != nil {
		return err
	}
	taxText, err := r.money(tax, "tax")
	if err != nil {
		return err
	}
	total, err := r.money(r.inv.TotalCost, "total")
	if err != nil {
		return err
	}
	due, err := r.money(r.inv.PendingAmount, "amount due")
	if err != nil {
		return err
	}

	above := []summaryEntry{
		{label: "Sub Total", value: subtotal, style: r.regular()},
		{label: fmt.Sprintf("GST (%s%%)", r.inv.GSTPercent.String()), value: taxText, style: r.regular()},
	}
	if transport.IsPositive() {
		t, err := r.money(transport, "transportation")
		if err != nil {
			return err
		}
		above = append(above, summaryEntry{label: "Transportation", value: t, style: r.regular()})
	}
	above = append(above, summaryEntry{label: "Discount", value: zeroDiscount, style: r.regular()})

	highlight := r.bold()
	highlight.Color = Accent
	below := []summaryEntry{
		{label: "Total", value: total, style: r.bold()},
		{label: "Amount Due", value: due, style: highlight},
	}

	h := 2*summaryPadding + float64(len(above)+len(below))*summaryRowHeight + summaryDividerGap
	if err := r.ensure(h, "summary band"); err != nil {
		return err
	}

	w := r.g.Columns[ColUnitPrice] + r.g.Columns[ColTax] + r.g.Columns[ColLineTotal]
	x := r.g.Margin + r.g.TableWidth() - w
	top := r.y

	rowY := top + summaryPadding
	for _, e := range above {
		r.summaryRow(x, rowY, w, e)
		rowY += summaryRowHeight
	}

	divider := rowY + summaryDividerGap/2
	r.rec.DrawLine(x+r.g.CellPadding, divider, x+w-r.g.CellPadding, divider, r.rule())
	rowY += summaryDividerGap

	for _, e := range below {
		r.summaryRow(x, rowY, w, e)
		rowY += summaryRowHeight
	}

	r.rec.DrawRect(x, top, w, h, Style{Color: Black, LineWidth: 0.8})

	r.y += h + bandGap
	return nil
}

func (r *run) summaryRow(x, y, w float64, e summaryEntry) {
	const labelW = 95
	pad := r.g.CellPadding
	textY := y + (summaryRowHeight-r.g.LineHeight)/2

	label := e.style
	label.Align = AlignLeft
	r.rec.PlaceText(x+pad, textY, labelW, r.g.LineHeight, e.label, label)

	value := e.style
	value.Align = AlignRight
	r.rec.PlaceText(x+pad+labelW, textY, w-labelW-2*pad, r.g.LineHeight, e.value, value)
}

func (r *run) amountInWordsBand() error {
	words, err := format.ToWords(r.inv.TotalCost)
	if err != nil {
		return fmt.Errorf("layout: amount in words: %w", err)
	}

	lines := r.wrap(amountInWordsLabel+words+" Only", r.g.UsableWidth(), r.bold())
	return r.textBand(lines, "amount in words")
}

func (r *run) thankYouBand() error {
	return r.textBand([]line{{text: thankYouLine, style: r.regular()}}, "thank-you line")
}

func (r *run) paymentDetailsBand() error {
	p := r.issuer
	if !p.HasPaymentDetails() {
		return nil
	}

	w := r.g.UsableWidth()
	lines := []line{{text: "Payment Details", style: r.bold()}}
	fields := []struct{ label, value string }{
		{"Bank: ", p.Bank.Name},
		{"Account Name: ", p.Bank.AccountName},
		{"Account No: ", p.Bank.AccountNumber},
		{"IFSC: ", p.Bank.IFSC},
		{"UPI: ", p.PaymentApp},
	}
	for _, f := range fields {
		if present(f.value) {
			lines = append(lines, r.wrap(f.label+f.value, w, r.regular())...)
		}
	}

	return r.textBand(lines, "payment details")
}

func (r *run) termsBand() error {
	w := r.g.UsableWidth()
	lines := []line{{text: "Terms & Conditions", style: r.bold()}}
	for i, clause := range Terms {
		lines = append(lines, r.wrap(fmt.Sprintf("%d. %s", i+1, clause), w, r.regular())...)
	}
	return r.textBand(lines, "terms")
}

func (r *run) authorizationBand() error {
	x := r.g.Margin + r.g.UsableWidth() - signatureWidth

	var caption []line
	if present(r.issuer.Name) {
		caption = r.wrap("For "+r.issuer.Name, signatureWidth, r.bold())
	}

	captionH := float64(len(caption)) * r.g.LineHeight
	h := captionH + signatureSpace + r.g.LineHeight
	if err := r.ensure(h, "authorization band"); err != nil {
		return err
	}

	r.drawLines(caption, x, r.y, signatureWidth, AlignRight)

	sigY := r.y + captionH + signatureSpace
	r.rec.DrawLine(x, sigY, x+signatureWidth, sigY, Style{Color: Black, LineWidth: 0.5})

	st := r.regular()
	st.Align = AlignRight
	r.rec.PlaceText(x, sigY, signatureWidth, r.g.LineHeight, "Authorised Signatory", st)

	r.y += h
	return nil
}

// textBand draws full-width lines as one unbreakable block.
func (r *run) textBand(lines []line, what string) error {
	h := float64(len(lines)) * r.g.LineHeight
	if err := r.ensure(h, what); err != nil {
		return err
	}

	r.drawLines(lines, r.g.Margin, r.y, r.g.UsableWidth(), AlignLeft)

	r.y += h + bandGap
	return nil
}
