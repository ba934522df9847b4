package mapper

import (
	"strings"

	"calq-destination-service/internal/events/core/domain"
)

// traitAliases is the complete set of traits Calq understands, keyed by the
// canonical trait name. Anything else is dropped.
var traitAliases = map[string]string{
	"avatar":  "$image_url",
	"country": "$country",
	"name":    "$full_name",
	"gender":  "$gender",
	"email":   "$email",
	"phone":   "$phone",
	"city":    "$city",
	"age":     "$age",
}

func traits(in map[string]any) map[string]any {
	out := make(map[string]any, len(traitAliases))
	for trait, alias := range traitAliases {
		out[alias] = traitValue(in, trait)
	}
	return domain.Reject(out)
}

func traitValue(in map[string]any, trait string) any {
	v := in[trait]
	if trait != "name" {
		return v
	}
	if name, ok := v.(string); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	first, _ := in["firstName"].(string)
	last, _ := in["lastName"].(string)
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" || last == "" {
		if _, ok := v.(string); ok {
			return ""
		}
		return v
	}
	return first + " " + last
}
