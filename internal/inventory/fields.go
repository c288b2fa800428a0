package inventory

import (
	"github.com/mitchellh/mapstructure"
)

var fieldNames = []string{"name", "brand", "quantity", "price", "barcode", "ingredients"}

// Fields is a create or patch request. A nil pointer means the field was not
// supplied, except for Barcode where an explicit null is recorded as present
// so a patch can clear it.
type Fields struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	Barcode     *string  `json:"barcode"`
	Ingredients *string  `json:"ingredients"`

	present map[string]struct{}
}

// DecodeFields maps a decoded JSON object onto Fields. Keys other than the
// six product fields are ignored. Numbers should arrive as json.Number so a
// fractional quantity is rejected instead of truncated.
func DecodeFields(raw map[string]any) (Fields, error) {
	var f Fields

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:   "json",
		Result:    &f,
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return Fields{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Fields{}, err
	}

	f.present = make(map[string]struct{}, len(fieldNames))
	for _, name := range fieldNames {
		if _, ok := raw[name]; ok {
			f.present[name] = struct{}{}
		}
	}
	return f, nil
}

func (f Fields) has(name string) bool {
	_, ok := f.present[name]
	return ok
}

func (f Fields) hasRequired() bool {
	return f.Name != nil && f.Quantity != nil && f.Price != nil
}

func (f Fields) apply(p *Product) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Brand != nil {
		p.Brand = *f.Brand
	}
	if f.Quantity != nil {
		p.Quantity = *f.Quantity
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.Barcode != nil || f.has("barcode") {
		p.Barcode = copyString(f.Barcode)
	}
	if f.Ingredients != nil {
		p.Ingredients = *f.Ingredients
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func orDefault(s *string) string {
	if s == nil {
		return defaultText
	}
	return *s
}
