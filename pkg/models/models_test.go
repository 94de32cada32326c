package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestIngredientsKeepOrder(t *testing.T) {
	raw := `{"salt": "1 tsp", "eggs (large)": 2, "butter": 0.5}`

	var in Ingredients
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"salt", "eggs (large)", "butter"}
	if len(in) != len(want) {
		t.Fatalf("expected %d ingredients, got %d", len(want), len(in))
	}
	for i, name := range want {
		if in[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, in[i].Name)
		}
	}

	out, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"salt":"1 tsp","eggs (large)":2,"butter":0.5}` {
		t.Errorf("unexpected encoding: %s", out)
	}
}

func TestIngredientsDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var in Ingredients
	if err := json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(in) != 2 || in[0].Name != "a" || in[0].Quantity.String() != "3" {
		t.Errorf("unexpected ingredients: %+v", in)
	}
}

func TestIngredientsRejectsNonObject(t *testing.T) {
	var in Ingredients
	if err := json.Unmarshal([]byte(`["eggs"]`), &in); err == nil {
		t.Fatal("expected error for array input")
	}
}

func TestIngredientsNullIsEmpty(t *testing.T) {
	in := Ingredients{{Name: "x", Quantity: TextQuantity("1")}}
	if err := json.Unmarshal([]byte(`null`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(in) != 0 {
		t.Errorf("expected empty ingredients, got %+v", in)
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
		isNumber bool
		wantErr  bool
	}{
		{name: "integer", raw: `2`, wantText: "2", isNumber: true},
		{name: "float", raw: `2.5`, wantText: "2.5", isNumber: true},
		{name: "trailing zero", raw: `2.50`, wantText: "2.5", isNumber: true},
		{name: "exponent", raw: `1e2`, wantText: "100.0", isNumber: true},
		{name: "negative exponent", raw: `25E-1`, wantText: "2.5", isNumber: true},
		{name: "string", raw: `"1 cup"`, wantText: "1 cup"},
		{name: "bool", raw: `true`, wantErr: true},
		{name: "object", raw: `{"n": 1}`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuantity([]byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuantity) {
					t.Fatalf("expected ErrInvalidQuantity, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.String() != tt.wantText {
				t.Errorf("expected %q, got %q", tt.wantText, q.String())
			}
			if q.IsNumber() != tt.isNumber {
				t.Errorf("expected IsNumber=%v", tt.isNumber)
			}
		})
	}
}

func TestQuantityPlus(t *testing.T) {
	got := NumberQuantity(2).Plus(TextQuantity("1 cup"))
	if got.IsNumber() {
		t.Error("combined quantity should be text")
	}
	if got.String() != "2, plus 1 cup" {
		t.Errorf("unexpected combined quantity %q", got.String())
	}

	b, _ := json.Marshal(got)
	if string(b) != `"2, plus 1 cup"` {
		t.Errorf("unexpected encoding %s", b)
	}
}

func TestQuantityPlusNormalizesNumbers(t *testing.T) {
	a, err := ParseQuantity([]byte(`2.50`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := ParseQuantity([]byte(`1e2`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := a.Plus(b).String(); got != "2.5, plus 100.0" {
		t.Errorf("unexpected combined quantity %q", got)
	}
}

func TestPriceListOrder(t *testing.T) {
	var p PriceList
	if err := json.Unmarshal([]byte(`{"eggs": 2.4, "salt": 0.6}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p[0].Label != "eggs" || p[1].Label != "salt" {
		t.Fatalf("unexpected order: %+v", p)
	}
	if v, ok := p.Get("salt"); !ok || v != 0.6 {
		t.Errorf("expected salt=0.6, got %v %v", v, ok)
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"eggs":2.4,"salt":0.6}` {
		t.Errorf("unexpected encoding %s", b)
	}
}

func TestPriceListRejectsText(t *testing.T) {
	var p PriceList
	if err := json.Unmarshal([]byte(`{"eggs": "cheap"}`), &p); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestStoreCoordinates(t *testing.T) {
	lat, lon := 55.0478, -1.4827
	s := Store{Latitude: &lat, Longitude: &lon}
	if gotLat, gotLon, ok := s.Coordinates(); !ok || gotLat != lat || gotLon != lon {
		t.Errorf("unexpected coordinates %v %v %v", gotLat, gotLon, ok)
	}

	s.Longitude = nil
	if _, _, ok := s.Coordinates(); ok {
		t.Error("expected missing coordinates")
	}
}
