package console

import (
	"strings"

	"github.com/aluiziolira/go-scrape-lots/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	nameWidth = 70
	ruleWidth = 80
	currency  = "RUB"
)

var printer = message.NewPrinter(language.English)

// formatPrice groups thousands with commas and keeps two decimals.
func formatPrice(price float64) string {
	return printer.Sprintf("%.2f", price)
}

// truncateName cuts name to nameWidth characters for display.
func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= nameWidth {
		return name
	}
	return string(runes[:nameWidth])
}

func render(w *errWriter, lots []models.Lot, minPrice, maxPrice float64) {
	w.printf("\nLots from %s to %s %s:\n\n", formatPrice(minPrice), formatPrice(maxPrice), currency)
	w.printf("%s\n", strings.Repeat("=", ruleWidth))

	for i, lot := range lots {
		w.printf("%d. %s\n", i+1, truncateName(lot.Name))
		w.printf("   Price: %s %s\n", formatPrice(lot.Price), currency)
		w.printf("   Link: %s\n", lot.Link)
		w.printf("%s\n", strings.Repeat("-", ruleWidth))
	}

	if len(lots) == 0 {
		w.printf("No lots in range\n")
	}
}
