package model

import "time"

// Document holds the annotated text plus free-text metadata. The text column
// may be stored through a compression codec; Compression records which one.
type Document struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"not null"`
	Text        string    `gorm:"not null"`
	CoderID     int64     `gorm:"not null;index"`
	Coder       *Coder    `gorm:"foreignKey:CoderID;constraint:OnDelete:CASCADE"`
	Author      string
	Source      string
	Section     string
	Type        string
	Notes       string
	Date        time.Time `gorm:"not null"`
	Compression string    // codec name used for the text column, empty for none
}

// TableDocument is the shallow listing projection. It carries everything the
// document table view needs except the (potentially large) text itself.
type TableDocument struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CoderID   int64     `json:"coderId"`
	CoderName string    `json:"coderName"`
	Author    string    `json:"author"`
	Source    string    `json:"source"`
	Section   string    `json:"section"`
	Type      string    `json:"type"`
	Notes     string    `json:"notes"`
	Date      time.Time `json:"date"`
	Frequency int64     `json:"frequency"` // number of statements in the document
}
