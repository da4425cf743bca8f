package model

type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
	VideoURL    string `json:"videoUrl,omitempty"`
	// MediaType is one of "video", "gif", "image" or empty.
	MediaType string `json:"mediaType,omitempty"`
}

func (e Exercise) GetID() int64 { return e.ID }

func (e Exercise) Validate() error {
	var v ValidationError
	v.require("name", e.Name)
	if e.CategoryID <= 0 {
		v.Add("categoryId", "изберете категория")
	}
	switch e.MediaType {
	case "", "video", "gif", "image":
	default:
		v.Add("mediaType", "невалиден тип медия")
	}
	return v.OrNil()
}

type ExerciseCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c ExerciseCategory) GetID() int64 { return c.ID }

func (c ExerciseCategory) Validate() error {
	var v ValidationError
	v.require("name", c.Name)
	return v.OrNil()
}
