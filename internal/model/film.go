package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FilmStatus is the catalog state shown on the film cards.
type FilmStatus string

const (
	FilmShowing FilmStatus = "showing"
	FilmComing  FilmStatus = "coming"
)

// Toggle flips between showing and coming.  Unknown values become showing.
func (s FilmStatus) Toggle() FilmStatus {
	if s == FilmShowing {
		return FilmComing
	}
	return FilmShowing
}

// Film is a catalog entry.  The upstream keeps display metadata in two
// nested objects, ratedView and infoFilm.
type Film struct {
	ID           string     `json:"id"`
	NameFilm     string     `json:"nameFilm"`
	VideoTrailer string     `json:"videoTrailer,omitempty"`
	Release      string     `json:"release,omitempty"`
	Img          []string   `json:"img,omitempty"`
	SubImg       []string   `json:"subImg,omitempty"`
	Status       FilmStatus `json:"status,omitempty"`
	RatedView    RatedView  `json:"ratedView"`
	InfoFilm     InfoFilm   `json:"infoFilm"`
}

// Poster returns the first image or an empty string.
func (f Film) Poster() string {
	if len(f.Img) == 0 {
		return ""
	}
	return f.Img[0]
}

// RatedView carries the two review scores.
type RatedView struct {
	IMDb Score `json:"imdb"`
	User Score `json:"user"`
}

// InfoFilm carries the descriptive metadata of a film.  Every field is
// optional upstream.
type InfoFilm struct {
	Category    []string `json:"category,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Director    string   `json:"director,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Language    string   `json:"language,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Story       string   `json:"story,omitempty"`
	Country     string   `json:"country,omitempty"`
	Time        string   `json:"time,omitempty"`
	Status      bool     `json:"status"`
}

// Score accepts both JSON numbers and strings; the upstream has both.
type Score string

func (s *Score) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Score(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = Score(n.String())
	return nil
}

// Float returns the numeric value of the score, or 0 when it is not a number.
func (s Score) Float() float64 {
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return 0
	}
	return f
}
