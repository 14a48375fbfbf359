package graph

const (
	colorUniRed    = "#ac0634"
	colorUniYellow = "#fbb900"
	colorUniGrey   = "#cfcfcf"

	colorBlack = "#000000"
	colorWhite = "#FFFFFF"
)

// Style is the visual treatment shared by every node of one kind.
type Style struct {
	Color     string `json:"color" yaml:"color" mapstructure:"color"`
	TextColor string `json:"text_color" yaml:"text_color" mapstructure:"text_color"`
}

// Theme holds the read-only styling a Builder stamps onto nodes and that
// exporters use for edges. Construct it once and share it.
type Theme struct {
	File      Style
	Class     Style
	Method    Style
	Field     Style
	Parameter Style

	Shape        string
	BorderRadius int

	EdgeColorLight string
	EdgeColorDark  string
}

// DefaultTheme returns the stock palette: grey structure, yellow methods,
// red variables.
func DefaultTheme() *Theme {
	return &Theme{
		File:      Style{Color: colorUniGrey, TextColor: colorBlack},
		Class:     Style{Color: colorUniGrey, TextColor: colorBlack},
		Method:    Style{Color: colorUniYellow, TextColor: colorBlack},
		Field:     Style{Color: colorUniRed, TextColor: colorWhite},
		Parameter: Style{Color: colorUniRed, TextColor: colorWhite},

		Shape:        "box",
		BorderRadius: 8,

		EdgeColorLight: colorBlack,
		EdgeColorDark:  colorWhite,
	}
}

// StyleFor returns the style for kind k.
func (t *Theme) StyleFor(k Kind) Style {
	switch k {
	case KindFile:
		return t.File
	case KindClass:
		return t.Class
	case KindMethod:
		return t.Method
	case KindField:
		return t.Field
	default:
		return t.Parameter
	}
}

// EdgeColor picks the edge color for the display mode.
func (t *Theme) EdgeColor(dark bool) string {
	if dark {
		return t.EdgeColorDark
	}
	return t.EdgeColorLight
}
