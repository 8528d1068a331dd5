package model

// DisplayDocument is the rendered roster summary handed to the transport
type DisplayDocument struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url,omitempty"`
	Color       int             `json:"color"`
	Author      *DocumentAuthor `json:"author,omitempty"`
	Image       string          `json:"image,omitempty"`
	Footer      string          `json:"footer"`
	Fields      []DocumentField `json:"fields"`
}

// DocumentAuthor is the optional author line of a document
type DocumentAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// DocumentField is one titled section of a document
type DocumentField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
