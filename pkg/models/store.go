package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Prices    PriceList `json:"prices"`
	Address   string    `json:"address"`
	Postcode  string    `json:"postcode"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// Coordinates reports the store location; ok is false when either
// coordinate is unknown.
func (s Store) Coordinates() (lat, lon float64, ok bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return 0, 0, false
	}
	return *s.Latitude, *s.Longitude, true
}

type Price struct {
	Label  string
	Amount float64
}

// PriceList is a store catalog: label -> unit price, in stored order.
type PriceList []Price

func (p PriceList) Get(label string) (float64, bool) {
	for _, it := range p {
		if it.Label == label {
			return it.Amount, true
		}
	}
	return 0, false
}

func (p *PriceList) Set(label string, amount float64) {
	for i := range *p {
		if (*p)[i].Label == label {
			(*p)[i].Amount = amount
			return
		}
	}
	*p = append(*p, Price{Label: label, Amount: amount})
}

func (p PriceList) MarshalJSON() ([]byte, error) {
	return encodeObject(len(p), func(i int) (string, []byte, error) {
		return p[i].Label, []byte(strconv.FormatFloat(p[i].Amount, 'f', -1, 64)), nil
	})
}

func (p *PriceList) UnmarshalJSON(data []byte) error {
	out := PriceList{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var amount float64
		if err := json.Unmarshal(raw, &amount); err != nil {
			return fmt.Errorf("price %q: %w", key, err)
		}
		out.Set(key, amount)
		return nil
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}
