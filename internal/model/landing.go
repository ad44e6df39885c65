package model

// Feature is one platform module shown as a card and in the feature modal.
type Feature struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Icon        string   `json:"-"`
}

type Benefit struct {
	Title       string
	Description string
	Icon        string
}

// Stat is an about-section counter; Label follows the value directly ("100" + "% Climbing Focus").
type Stat struct {
	Value int
	Label string
}

type Link struct {
	Label    string
	Href     string
	External bool
}
