package notice

// Notice is one entry of the school's daily notices board.
type Notice struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Contents string `json:"contents"` // raw markup
	Staff    string `json:"staff"`
	Colour   string `json:"colour"`
	LabelID  int    `json:"label"`
	Date     string `json:"date"` // yyyy-mm-dd
}
