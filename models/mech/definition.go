package mech

import (
	"math"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

const sectionSeparator = "\n---\n"

// definition is the raw shape shared by parts and modules:
//
//	description
//	---
//	cost, tag, tag
//	---
//	layout
//	---
//	pivotX,pivotY   (modules only, optional)
type definition struct {
	description string
	cost        string
	tags        []string
	layout      string
	pivot       string
}

func splitDefinition(key, source string) (definition, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.TrimLeft(source, "\n")
	sections := strings.Split(source, sectionSeparator)
	if len(sections) < 3 {
		return definition{}, cerr.ErrDefinitionSections(key, 3, len(sections))
	}

	def := definition{
		description: strings.TrimSpace(sections[0]),
		layout:      strings.TrimRight(sections[2], "\n"),
	}
	if len(sections) > 3 {
		def.pivot = strings.TrimSpace(sections[3])
	}

	fields := strings.Split(strings.TrimSpace(sections[1]), ",")
	def.cost = strings.TrimSpace(fields[0])
	for _, f := range fields[1:] {
		if tag := strings.TrimSpace(f); tag != "" {
			def.tags = append(def.tags, tag)
		}
	}
	return def, nil
}

// parseCost reports the literal part of a cost field and whether the
// formula should be added to it. A bare number is taken literally; a
// leading sign, "auto" or any other text uses the formula. A blank field
// also uses the formula for parts, not a literal 0, so parts and modules
// read it the same way.
func parseCost(field string) (float64, bool) {
	if field == "" || strings.ContainsRune(field, '_') {
		return 0, true
	}
	n, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, true
	}
	if strings.HasPrefix(field, "+") || strings.HasPrefix(field, "-") {
		return n, true
	}
	return n, false
}

func roundCost(cost float64) int {
	return int(math.Ceil(cost))
}
