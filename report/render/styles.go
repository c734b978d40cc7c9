package render

// TextStyle is the font and color applied to one kind of text.
type TextStyle struct {
	Family string
	Style  string
	Size   float64
	Color  [3]int
}

const (
	pageMargin   = 18.0
	lineHeight   = 6.0
	footerOffset = -15.0
)

// StyleMap centralizes the formatting for report elements.
var StyleMap = map[string]TextStyle{
	"title": {
		Family: "Helvetica",
		Style:  "B",
		Size:   22,
		Color:  [3]int{17, 24, 39},
	},
	"meta": {
		Family: "Helvetica",
		Size:   11,
		Color:  [3]int{75, 85, 99},
	},
	"sectionHeading": {
		Family: "Helvetica",
		Style:  "B",
		Size:   15,
		Color:  [3]int{31, 41, 55},
	},
	"subheading": {
		Family: "Helvetica",
		Style:  "B",
		Size:   11,
		Color:  [3]int{31, 41, 55},
	},
	"body": {
		Family: "Helvetica",
		Size:   11,
		Color:  [3]int{33, 33, 33},
	},
	"footer": {
		Family: "Helvetica",
		Style:  "I",
		Size:   8,
		Color:  [3]int{107, 114, 128},
	},
}
