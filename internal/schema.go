package internal

import "github.com/invopop/jsonschema"

// GenerateSchema builds the JSONSchema advertised to the upstream as the
// expected response shape for typed chat requests.
func GenerateSchema[S any]() jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(new(S))

	return *schema
}
