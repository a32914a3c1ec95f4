package business

import (
	"fmt"
	"strings"
)

// SearchType selects which field the business search form matches.
type SearchType string

const (
	SearchAgent  SearchType = "agent"  // Agent name
	SearchClient SearchType = "client" // Client email
	SearchID     SearchType = "id"     // Client identification (cédula)
)

// SearchTypes lists the form's radio options in display order.
var SearchTypes = []struct {
	Type  SearchType
	Label string
}{
	{SearchAgent, "Nombre del agente"},
	{SearchClient, "Cliente"},
	{SearchID, "Cédula"},
}

// SearchParams is a submission of the business search form.
type SearchParams struct {
	Type     SearchType
	Criteria string
}

// ParseSearchType validates a search type from a form value.
// An empty value defaults to SearchAgent.
func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(s) {
	case "":
		return SearchAgent, nil
	case SearchAgent, SearchClient, SearchID:
		return SearchType(s), nil
	}
	return "", fmt.Errorf("unknown search type %q", s)
}

// Filter returns the businesses matching params, in input order.
// Blank criteria ("Mostrar todos") match everything.
func Filter(all []*Business, params SearchParams) []*Business {
	criteria := strings.ToLower(strings.TrimSpace(params.Criteria))
	if criteria == "" {
		return all
	}

	out := make([]*Business, 0, len(all))
	for _, b := range all {
		var field string
		switch params.Type {
		case SearchClient:
			field = b.Email
		case SearchID:
			field = b.Identification
		default:
			field = b.User.Name
		}
		if strings.Contains(strings.ToLower(field), criteria) {
			out = append(out, b)
		}
	}
	return out
}
