package pdf

// RGB is a plain color triple.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Margins are page margins in millimeters.
type Margins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Styles is the explicit style registry handed to the renderer. There is no
// module-level styling state: every renderer instance carries its own copy.
type Styles struct {
	PageSize       string  `json:"page_size"`
	Orientation    string  `json:"orientation"` // portrait, landscape
	FontFamily     string  `json:"font_family"`
	FontSize       float64 `json:"font_size"`
	HeaderFontSize float64 `json:"header_font_size"`
	TitleFontSize  float64 `json:"title_font_size"`
	HeaderColor    RGB     `json:"header_color"`
	AggregateColor RGB     `json:"aggregate_color"`
	Margins        Margins `json:"margins"`
}

// DefaultStyles returns the institutional document styling.
func DefaultStyles() Styles {
	return Styles{
		PageSize:       "Letter",
		Orientation:    "portrait",
		FontFamily:     "Arial",
		FontSize:       10,
		HeaderFontSize: 11,
		TitleFontSize:  16,
		HeaderColor:    RGB{R: 31, G: 56, B: 100},
		AggregateColor: RGB{R: 242, G: 242, B: 242},
		Margins: Margins{
			Left:   18,
			Right:  18,
			Top:    20,
			Bottom: 20,
		},
	}
}
