package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// Console implementa ports.Notifier imprimiendo el report en tablas.
type Console struct {
	out      io.Writer
	topN     int
	showTree bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(topN int, showTree bool) *Console {
	return &Console{out: os.Stdout, topN: topN, showTree: showTree}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, topN int, showTree bool) *Console {
	return &Console{out: w, topN: topN, showTree: showTree}
}

// Notify imprime el ranking completo, la vista condensada y, si está
// activado, el árbol de cadena.
func (c *Console) Notify(_ context.Context, report *domain.Report) error {
	if len(report.Options) == 0 {
		fmt.Fprintf(c.out, "no scenarios found for ticker %s\n", report.Ticker)
		if c.showTree && report.Tree != nil {
			c.printTree(report.Tree)
		}
		return nil
	}

	fmt.Fprintf(c.out, "\n%s — %d options, %d unique scenarios (price: %s)\n",
		report.Ticker, len(report.Options), len(report.Condensed), report.PriceField)

	c.printOptions("RANKED", report.Options)
	if len(report.Condensed) < len(report.Options) {
		c.printOptions("CONDENSED", report.Condensed)
	}

	if c.showTree && report.Tree != nil {
		c.printTree(report.Tree)
	}
	return nil
}

// printOptions imprime una tabla de opciones rankeadas.
func (c *Console) printOptions(title string, opts []*domain.MakeOption) {
	n := len(opts)
	if c.topN > 0 && c.topN < n {
		n = c.topN
	}

	fmt.Fprintf(c.out, "\n=== %s (top %d of %d) ===\n", title, n, len(opts))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Recipe", "Scenario", "Runs/d", "CoGM", "Profit/d", "Area/d", "P/A", "ROI n", "ROI b")

	for i, opt := range opts[:n] {
		table.Append(
			fmt.Sprintf("%d", i+1),
			opt.RecipeID,
			truncate(opt.Decision.TopKey(), 44),
			fmt.Sprintf("%.2f", opt.RunsPerDay),
			fmt.Sprintf("%.2f", opt.CogmPerOutput),
			fmt.Sprintf("%.2f", opt.ProfitPerDay),
			fmt.Sprintf("%.2f", totalArea(opt)),
			fmt.Sprintf("%.3f", opt.TotalProfitPA()),
			days(rollupROINarrow(opt)),
			days(rollupROIBroad(opt)),
		)
	}
	table.Render()

	fmt.Fprintln(c.out, "  P/A = profit/día por unidad de área acumulada | ROI n/b = payback propio/subárbol")
}

// printTree imprime el árbol solo-MAKE con indentación; las hojas de error
// se marcan para distinguirlas de los nodos resueltos.
func (c *Console) printTree(root *domain.ChainNode) {
	fmt.Fprintf(c.out, "\n=== CHAIN TREE ===\n")
	c.printNode(root, 0)
}

func (c *Console) printNode(n *domain.ChainNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsError {
		fmt.Fprintf(c.out, "%s! %s — %s\n", indent, n.Ticker, n.ErrorMessage)
		return
	}
	if n.AmountPerRun > 0 {
		fmt.Fprintf(c.out, "%s%s ×%.2f (%s @ %s)\n", indent, n.Ticker, n.AmountPerRun, n.RecipeID, n.Building)
	} else {
		fmt.Fprintf(c.out, "%s%s (%s @ %s)\n", indent, n.Ticker, n.RecipeID, n.Building)
	}
	for _, child := range n.Inputs {
		c.printNode(child, depth+1)
	}
}

// days formatea un payback anulable.
func days(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1fd", *v)
}

func totalArea(opt *domain.MakeOption) float64 {
	if opt.Rollup == nil {
		return opt.SelfAreaPerDay
	}
	return opt.Rollup.TotalAreaPerDay
}

func rollupROINarrow(opt *domain.MakeOption) *float64 {
	if opt.Rollup == nil {
		return nil
	}
	return opt.Rollup.ROINarrowDays
}

func rollupROIBroad(opt *domain.MakeOption) *float64 {
	if opt.Rollup == nil {
		return nil
	}
	return opt.Rollup.ROIBroadDays
}

// truncate corta un string largo añadiendo elipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
