package api

import (
	"time"
)

type Status struct {
	OK  bool `json:"ok,omitempty"`
	Err bool `json:"err,omitempty"`

	Msg string `json:"msg"`

	Jobs []Job `json:"jobs,omitempty"`
}

type Job struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`

	FileHash   string `json:"file_hash,omitempty"`
	Paragraphs int    `json:"paragraphs,omitempty"`

	Created  *time.Time `json:"created,omitempty"`
	Started  *time.Time `json:"started,omitempty"`
	Finished *time.Time `json:"finished,omitempty"`
}

type File struct {
	Hash string `json:"hash"`
	Name string `json:"name"`

	Uploaded time.Time `json:"uploaded"`

	Keywords []Keyword `json:"keywords"`

	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
}

type Paragraph struct {
	Hash     string `json:"hash"`
	Contents string `json:"contents"`
	Position int    `json:"position"`

	Keywords []Keyword `json:"keywords"`
}

type Keyword struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type Document struct {
	Pages []Page `json:"pages,omitempty"`
	Lines []Line `json:"lines"`
}

type Page struct {
	Page int `json:"page,omitempty"`

	Unit   string  `json:"unit,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type Line struct {
	Page int `json:"page,omitempty"`

	Text string  `json:"text"`
	Top  float64 `json:"top"`

	Score float64 `json:"score,omitempty"`
}

type SegmentRequest struct {
	Lines []Line `json:"lines"`

	Tolerance *float64 `json:"tolerance,omitempty"`
}

type Segment struct {
	Text  string `json:"text"`
	Lines int    `json:"lines"`
}
