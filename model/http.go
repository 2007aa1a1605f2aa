package model

type DecodeRequestBody struct {
	URL string `json:"url"`
}

type BarResult struct {
	Beats  [][]string `json:"beats"`
	Repeat bool       `json:"repeat,omitempty"`
}

type SongResult struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Composer string      `json:"composer"`
	Style    string      `json:"style"`
	Key      string      `json:"key"`
	BPM      uint32      `json:"bpm"`
	Bars     []BarResult `json:"bars,omitempty"`
	Chart    string      `json:"chart,omitempty"`
}

type FailureResult struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

type DecodeResponse struct {
	Title    string          `json:"title"`
	Songs    []SongResult    `json:"songs"`
	Failures []FailureResult `json:"failures,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
