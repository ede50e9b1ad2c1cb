package storage

import (
	"encoding/json"
	"sync"

	"github.com/linkmax/lnkmx/internal/validation"
)

// ConfigJSONSchema documents the accepted shape of a storage Config.
const ConfigJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StorageConfig",
  "type": "object",
  "required": ["driver", "dsn"],
  "properties": {
    "name": {
      "type": "string"
    },
    "driver": {
      "type": "string",
      "enum": ["sqlite", "sqlite3", "postgres", "postgresql", "pgx", "pg"]
    },
    "dsn": {
      "type": "string",
      "minLength": 1
    },
    "options": {
      "type": "object",
      "additionalProperties": true
    }
  },
  "additionalProperties": false
}
`

var configSchema = sync.OnceValue(func() *validation.Validator {
	var schema map[string]any
	if err := json.Unmarshal([]byte(ConfigJSONSchema), &schema); err != nil {
		panic(err)
	}
	return validation.NewValidator(schema)
})

// ValidateConfig checks cfg against ConfigJSONSchema. Failures unwrap to
// validation.ErrSchemaValidation.
func ValidateConfig(cfg Config) error {
	return configSchema().Validate(cfg)
}
