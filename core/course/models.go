package course

type (
	// Lesson is one content block of a course week/module.
	Lesson struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Contents string `json:"contents"` // raw markup
		Resource string `json:"resource,omitempty"`
	}

	// Course is the content of one (programme, metaclass) subject instance.
	Course struct {
		Programme   int      `json:"programme"`
		Metaclass   int      `json:"metaclass"`
		Code        string   `json:"code"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Teacher     string   `json:"teacher"`
		Lessons     []Lesson `json:"lessons"`
	}
)
