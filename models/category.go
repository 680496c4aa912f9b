package models

import (
	"encoding/json"
	"strings"
)

// Category is the enum key the backend stores for a product category.
type Category string

const (
	CategoryFood         Category = "ALIMENTICIO"
	CategoryDrinks       Category = "BEBIDAS"
	CategoryElectronics  Category = "ELETRONICO"
	CategoryDecoration   Category = "DECORACAO"
	CategoryPersonalCare Category = "HIGIENE_PESSOAL"
	CategoryCleaning     Category = "LIMPEZA"
	CategoryOffice       Category = "ESCRITORIO"
	CategoryTools        Category = "FERRAMENTAS"
	CategoryOther        Category = "OUTROS"
)

var categoryOrder = []Category{
	CategoryFood,
	CategoryDrinks,
	CategoryElectronics,
	CategoryDecoration,
	CategoryPersonalCare,
	CategoryCleaning,
	CategoryOffice,
	CategoryTools,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryFood:         "Alimentício",
	CategoryDrinks:       "Bebidas",
	CategoryElectronics:  "Eletrônico",
	CategoryDecoration:   "Decoração",
	CategoryPersonalCare: "Higiene Pessoal",
	CategoryCleaning:     "Limpeza",
	CategoryOffice:       "Escritório",
	CategoryTools:        "Ferramentas",
	CategoryOther:        "Outros",
}

type CategoryOption struct {
	Key   Category `json:"chave"`
	Label string   `json:"descricao"`
}

func Categories() []CategoryOption {
	options := make([]CategoryOption, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		options = append(options, CategoryOption{Key: c, Label: categoryLabels[c]})
	}
	return options
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// LookupCategory resolves either an enum key ("HIGIENE_PESSOAL") or its label
// ("Higiene Pessoal"), ignoring case.
func LookupCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, c := range categoryOrder {
		if strings.EqualFold(string(c), s) || strings.EqualFold(categoryLabels[c], s) {
			return c, true
		}
	}
	return "", false
}

// ParseCategory is LookupCategory with unknown values mapped to CategoryOther.
func ParseCategory(s string) Category {
	if c, ok := LookupCategory(s); ok {
		return c
	}
	return CategoryOther
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*c = ""
		return nil
	}
	*c = ParseCategory(s)
	return nil
}
