package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalid matches any catalog validation failure via errors.Is.
var ErrInvalid = errors.New("invalid catalog")

// ValidationError lists every offending entry found while loading a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

//go:embed schema.json
var schemaJSON string

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
})

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// schemaProblems checks the decoded document shape before it is mapped onto
// Go types, so type mismatches are reported by field rather than as a
// decoder error.
func schemaProblems(raw any) ([]string, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling catalog schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validating catalog schema: %w", err)
	}

	var problems []string
	for _, re := range result.Errors() {
		problems = append(problems, re.String())
	}
	return problems, nil
}

func structProblems(c *Catalog) []string {
	var problems []string

	if err := structValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	paths := make(map[string]int)
	ids := make(map[string]string)
	for ti, t := range c.Topics {
		if prev, dup := paths[t.Path]; dup {
			problems = append(problems, fmt.Sprintf("topic %d: duplicate path %q (first used by topic %d)", ti, t.Path, prev))
		} else {
			paths[t.Path] = ti
		}
		for _, cat := range t.Categories {
			for _, q := range cat.Questions {
				if q.ID == "" {
					continue
				}
				if owner, dup := ids[q.ID]; dup {
					problems = append(problems, fmt.Sprintf("question %q in %s: duplicate id (first seen in %s)", q.ID, t.Path, owner))
					continue
				}
				ids[q.ID] = t.Path
			}
		}
	}

	return problems
}
