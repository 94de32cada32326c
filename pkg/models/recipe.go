package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Recipe struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Ingredients  Ingredients `json:"ingredients"`
	Instructions string      `json:"instructions"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Ingredient struct {
	Name     string
	Quantity Quantity
}

// Ingredients is an ordered label -> quantity mapping. It encodes as a JSON
// object and keeps the member order of the document it was decoded from.
type Ingredients []Ingredient

func (in Ingredients) Get(name string) (Quantity, bool) {
	for _, it := range in {
		if it.Name == name {
			return it.Quantity, true
		}
	}
	return Quantity{}, false
}

// Set replaces the quantity of an existing label in place, or appends it.
func (in *Ingredients) Set(name string, q Quantity) {
	for i := range *in {
		if (*in)[i].Name == name {
			(*in)[i].Quantity = q
			return
		}
	}
	*in = append(*in, Ingredient{Name: name, Quantity: q})
}

func (in Ingredients) MarshalJSON() ([]byte, error) {
	return encodeObject(len(in), func(i int) (string, []byte, error) {
		v, err := in[i].Quantity.MarshalJSON()
		return in[i].Name, v, err
	})
}

func (in *Ingredients) UnmarshalJSON(data []byte) error {
	out := Ingredients{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		q, err := ParseQuantity(raw)
		if err != nil {
			return fmt.Errorf("ingredient %q: %w", key, err)
		}
		out.Set(key, q)
		return nil
	})
	if err != nil {
		return err
	}
	*in = out
	return nil
}
