package domain

// Category groups boards.
type Category struct {
	ID     string `json:"id" bson:"_id"`
	Title  string `json:"title" bson:"title"`
	Active bool   `json:"active" bson:"active"`
	Audit  `bson:",inline"`
}

// Board belongs to exactly one category. Its title is unique within it.
type Board struct {
	ID          string `json:"id" bson:"_id"`
	CategoryID  string `json:"categoryId" bson:"category_id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Active      bool   `json:"active" bson:"active"`
	Audit       `bson:",inline"`
}

// Slide is a timed page shown on a board. Time is in seconds.
type Slide struct {
	ID      string `json:"id" bson:"_id"`
	BoardID string `json:"boardId" bson:"board_id"`
	Title   string `json:"title" bson:"title"`
	URL     string `json:"url" bson:"url"`
	Time    int    `json:"time" bson:"time"`
	Active  bool   `json:"active" bson:"active"`
	Audit   `bson:",inline"`
}
