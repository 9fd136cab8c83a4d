package handlers

import (
	"time"

	"paperchat/internal/storage"
)

// PaperView is the HTTP representation of a stored paper.
type PaperView struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Authors       []string   `json:"authors,omitempty"`
	Abstract      string     `json:"abstract"`
	Keywords      []string   `json:"keywords,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	PDFURL        string     `json:"pdf_url,omitempty"`
}

func toPaperView(p storage.Paper) PaperView {
	return PaperView{
		ID:            p.ID,
		Title:         p.Title,
		Authors:       p.Authors,
		Abstract:      p.Abstract,
		Keywords:      p.Keywords,
		PublishedDate: p.PublishedDate,
		PDFURL:        p.PDFURL,
	}
}

func toPaperViews(papers []storage.Paper) []PaperView {
	views := make([]PaperView, len(papers))
	for i, p := range papers {
		views[i] = toPaperView(p)
	}
	return views
}
