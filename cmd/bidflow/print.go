package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/viant/bidflow/model"
	"github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/document"
	"github.com/viant/bidflow/service/event"
	"github.com/viant/bidflow/service/workflow"
)

func printRFPs(out io.Writer, rfps []*model.RFP) {
	if len(rfps) == 0 {
		fmt.Fprintln(out, "No RFPs.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tDATE\tSTATUS")
	for _, rfp := range rfps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rfp.ID, rfp.Client, rfp.Date, rfp.Status)
	}
	w.Flush()
}

func printProducts(out io.Writer, products []*model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "No products.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tPRICE\tSTOCK")
	for _, product := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", product.SKU, product.Name, document.Money(product.Price), product.Stock)
	}
	w.Flush()
}

func printAnalytics(out io.Writer, analytics *model.Analytics) {
	if analytics == nil {
		fmt.Fprintln(out, "No analytics.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total RFPs\t%d\n", analytics.TotalRFPs)
	fmt.Fprintf(w, "Total value\t%s\n", document.Money(analytics.TotalValue))
	fmt.Fprintf(w, "Approval rate\t%s\n", document.Percent(analytics.ApprovalRate))
	fmt.Fprintf(w, "Avg confidence\t%s\n", document.Percent(analytics.AvgConfidence))
	for _, item := range analytics.StatusDistribution {
		fmt.Fprintf(w, "  %s\t%d\n", item.Name, item.Value)
	}
	w.Flush()
}

func printBid(out io.Writer, bid *model.Bid) {
	if bid == nil {
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "RFP\t%s\n", bid.RFPID)
	fmt.Fprintf(w, "Client\t%s\n", bid.Client)
	if bid.Product != nil {
		fmt.Fprintf(w, "Product\t%s (%s)\n", bid.Product.Name, bid.Product.SKU)
	}
	fmt.Fprintf(w, "Quantity\t%s L\n", document.Number(bid.Quantity))
	fmt.Fprintf(w, "Base price\t%s\n", document.Money(bid.Pricing.BasePrice))
	if bid.Pricing.HasDiscount() {
		fmt.Fprintf(w, "Discount\t%s (-%s)\n", document.Percent(bid.Pricing.Discount), document.Money(bid.Pricing.DiscountAmount))
	}
	fmt.Fprintf(w, "Total\t%s\n", document.Money(bid.Pricing.Total))
	fmt.Fprintf(w, "Confidence\t%s\n", document.Percent(bid.Confidence))
	w.Flush()
}

func printSession(out io.Writer, session *workflow.Session) {
	rfpID := "-"
	if session.SelectedRFP != nil {
		rfpID = session.SelectedRFP.ID
	}
	fmt.Fprintf(out, "RFP: %s  phase: %s  log lines: %d\n", rfpID, session.Phase, len(session.Logs))
	if session.StagedFile != "" {
		fmt.Fprintf(out, "Staged upload: %s\n", session.StagedFile)
	}
	if session.Err != nil {
		fmt.Fprintf(out, "Last error: %v\n", session.Err)
	}
	printBid(out, session.Bid)
}

func printAffordances(out io.Writer, affordances workflow.Affordances) {
	var actions []string
	if affordances.CanSelect {
		actions = append(actions, "select")
	}
	if affordances.CanApprove {
		actions = append(actions, "approve")
	}
	if affordances.CanReject {
		actions = append(actions, "reject")
	}
	if affordances.CanExport {
		actions = append(actions, "export")
	}
	if affordances.CanUpload {
		actions = append(actions, "upload")
	}
	fmt.Fprintf(out, "Available: %s\n", strings.Join(actions, ", "))
}

// notificationPrinter renders session notifications as console lines.
func notificationPrinter(out io.Writer) func(*event.Event[workflow.Notification]) {
	return func(evt *event.Event[workflow.Notification]) {
		n := evt.Data
		switch n.Kind {
		case workflow.NotifyLog:
			if n.Entry != nil {
				fmt.Fprintf(out, "[%s] [%s]: %s\n", n.Entry.Timestamp, n.Entry.Agent, n.Entry.Message)
			}
		case workflow.NotifyPhase:
			fmt.Fprintf(out, "-- %s\n", n.Phase)
		case workflow.NotifyWarning:
			fmt.Fprintf(out, "warning: %s\n", n.Message)
		case workflow.NotifyError:
			fmt.Fprintf(out, "error: %s\n", n.Message)
		case workflow.NotifyNotice:
			fmt.Fprintf(out, "%s\n", n.Message)
		}
	}
}

func decisionPrinter(out io.Writer) func(*approval.Event) {
	return func(evt *approval.Event) {
		decision := evt.Data
		if decision == nil {
			return
		}
		line := fmt.Sprintf("decision recorded: %s %s", decision.RFPID, decision.Status())
		if evt.Topic == approval.TopicDecisionReplaced {
			line += " (replaces earlier decision)"
		}
		if decision.Reason != "" {
			line += ": " + decision.Reason
		}
		fmt.Fprintln(out, line)
	}
}
