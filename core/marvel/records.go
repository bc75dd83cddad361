package marvel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"comics-etl/core/failure"
)

// Character is the part of a character record the pipeline consumes.
type Character struct {
	ID   int
	Name string
	// ComicsAvailable is the server's count of comics featuring the character.
	ComicsAvailable int
}

// ResourceRef is a summary link to another entity.
type ResourceRef struct {
	ResourceURI string
	Name        string
}

// Comic is the part of a comic record the pipeline consumes.
type Comic struct {
	ID    int
	Title string
	// CharactersAvailable is the server's count of characters in the comic.
	CharactersAvailable int
	// Characters is the (possibly truncated) list of character links.
	Characters []ResourceRef
}

type rawCharacter struct {
	ID     *int    `json:"id"`
	Name   *string `json:"name"`
	Comics *struct {
		Available *int `json:"available"`
	} `json:"comics"`
}

type rawComic struct {
	ID         *int    `json:"id"`
	Title      *string `json:"title"`
	Characters *struct {
		Available *int `json:"available"`
		Items     *[]struct {
			ResourceURI *string `json:"resourceURI"`
			Name        string  `json:"name"`
		} `json:"items"`
	} `json:"characters"`
}

func missing(op, field string) error {
	return failure.Errorf(failure.KindShape, op, "missing field %q", field)
}

// DecodeCharacter maps a raw character record.
func DecodeCharacter(raw json.RawMessage) (Character, error) {
	const op = "decode character"

	var r rawCharacter
	if err := json.Unmarshal(raw, &r); err != nil {
		return Character{}, failure.New(failure.KindParse, op, err)
	}
	switch {
	case r.ID == nil:
		return Character{}, missing(op, "id")
	case r.Name == nil:
		return Character{}, missing(op, "name")
	case r.Comics == nil:
		return Character{}, missing(op, "comics")
	case r.Comics.Available == nil:
		return Character{}, missing(op, "comics.available")
	}

	return Character{
		ID:              *r.ID,
		Name:            *r.Name,
		ComicsAvailable: *r.Comics.Available,
	}, nil
}

// DecodeComic maps a raw comic record.
func DecodeComic(raw json.RawMessage) (Comic, error) {
	const op = "decode comic"

	var r rawComic
	if err := json.Unmarshal(raw, &r); err != nil {
		return Comic{}, failure.New(failure.KindParse, op, err)
	}
	switch {
	case r.ID == nil:
		return Comic{}, missing(op, "id")
	case r.Title == nil:
		return Comic{}, missing(op, "title")
	case r.Characters == nil:
		return Comic{}, missing(op, "characters")
	case r.Characters.Available == nil:
		return Comic{}, missing(op, "characters.available")
	}

	// With nothing available the item list is absent rather than empty.
	if *r.Characters.Available == 0 {
		return Comic{ID: *r.ID, Title: *r.Title}, nil
	}
	if r.Characters.Items == nil {
		return Comic{}, missing(op, "characters.items")
	}

	refs := make([]ResourceRef, 0, len(*r.Characters.Items))
	for i, item := range *r.Characters.Items {
		if item.ResourceURI == nil {
			return Comic{}, missing(op, fmt.Sprintf("characters.items[%d].resourceURI", i))
		}
		refs = append(refs, ResourceRef{ResourceURI: *item.ResourceURI, Name: item.Name})
	}

	return Comic{
		ID:                  *r.ID,
		Title:               *r.Title,
		CharactersAvailable: *r.Characters.Available,
		Characters:          refs,
	}, nil
}

// CharacterIDs extracts the character id from the last path segment of every
// character link.
func (c Comic) CharacterIDs() ([]int, error) {
	ids := make([]int, 0, len(c.Characters))
	for _, ref := range c.Characters {
		seg := ref.ResourceURI[strings.LastIndex(ref.ResourceURI, "/")+1:]
		id, err := strconv.Atoi(seg)
		if err != nil {
			return nil, failure.Errorf(failure.KindShape, "decode comic", "comic %d: character uri %q does not end in an id", c.ID, ref.ResourceURI)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
