package engine

import "fmt"

// Color is one of the three item colors; each color maps to one user
// attribute channel.
type Color string

const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
)

// Colors lists the catalog colors in generation order.
var Colors = []Color{ColorRed, ColorGreen, ColorBlue}

// Item is one catalog entry. Count is a reserved attribute in 1..10 and is
// not consulted by any decision logic.
type Item struct {
	ID    string
	Color Color
	Count int
}

// CatalogSize is the fixed item catalog size: 3 colors x 10 counts.
const CatalogSize = 30

// GenerateItems enumerates the fixed catalog: for each color in order,
// counts 1..10, with ID "{color}-{count}". It consumes no randomness and
// calling it twice yields identical output.
func GenerateItems() []Item {
	items := make([]Item, 0, CatalogSize)
	for _, color := range Colors {
		for count := 1; count <= 10; count++ {
			items = append(items, Item{
				ID:    fmt.Sprintf("%s-%d", color, count),
				Color: color,
				Count: count,
			})
		}
	}
	return items
}
