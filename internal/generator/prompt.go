package generator

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
)

func domainNoun(domain types.Domain) string {
	if domain == types.DomainNoSQL {
		return "NoSQL document field"
	}
	return "SQL column"
}

// BuildPrompt renders the instruction sent to the model for one column.
func BuildPrompt(col types.Column, count int, domain types.Domain) string {
	if col.IsEnum() {
		quoted := make([]string, len(col.EnumValues))
		for i, v := range col.EnumValues {
			quoted[i] = "'" + v + "'"
		}
		return fmt.Sprintf(
			"Generate %d fake values for a %s named %q of type %q.\n"+
				"Only use values from this list: [%s]. Do not invent any other value.\n"+
				"Return the data as a JSON array, nothing else.",
			count, domainNoun(domain), col.Name, col.Type, strings.Join(quoted, ", "))
	}
	return fmt.Sprintf(
		"Generate %d fake values for a %s named %q of type %q.\n"+
			"Return the data as a JSON array, nothing else. Each value should be realistic.",
		count, domainNoun(domain), col.Name, col.Type)
}

// StripFences removes markdown code fences around a model response.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
