package contentapi

import (
	"errors"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const collectionSchema = `{"type": ["array", "null"], "items": {"type": "object"}}`

const contentEnvelopeSchema = `{
  "type": "object",
  "required": ["data"],
  "properties": {
    "data": {
      "type": "object",
      "properties": {
        "cases": ` + collectionSchema + `,
        "news": ` + collectionSchema + `,
        "banners": ` + collectionSchema + `
      }
    }
  }
}`

const teamEnvelopeSchema = `{
  "type": "object",
  "required": ["data"],
  "properties": {
    "data": {
      "type": "object",
      "properties": {
        "team": ` + collectionSchema + `
      }
    }
  }
}`

type envelopeSchemas struct {
	content *jsonschema.Schema
	team    *jsonschema.Schema
}

var loadSchemas = sync.OnceValues(func() (envelopeSchemas, error) {
	content, err := compileSchema("content.json", contentEnvelopeSchema)
	if err != nil {
		return envelopeSchemas{}, err
	}
	team, err := compileSchema("team.json", teamEnvelopeSchema)
	if err != nil {
		return envelopeSchemas{}, err
	}
	return envelopeSchemas{content: content, team: team}, nil
})

func compileSchema(name, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

// validateEnvelope checks a decoded payload against the schema registered for
// endpoint ("content" or "team").
func validateEnvelope(endpoint string, payload any) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	schema := schemas.content
	if endpoint == endpointTeam {
		schema = schemas.team
	}
	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &SchemaError{Endpoint: endpoint, Issues: collectIssues(validationErr)}
		}
		return &SchemaError{Endpoint: endpoint, Issues: []SchemaIssue{{Message: err.Error()}}}
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []SchemaIssue {
	issues := []SchemaIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, SchemaIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
