package types

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectMongoDB  = "mongodb"
)

var SupportedDialects = []string{DialectSQLite, DialectPostgres, DialectMySQL, DialectMongoDB}

// DialectConfig is a tagged union keyed by Type. Only the fields belonging
// to the selected variant may be set.
type DialectConfig struct {
	Type string `json:"type" mapstructure:"type" validate:"required"`

	// sqlite
	File string `json:"file,omitempty" mapstructure:"file"`

	// postgres, mysql
	Host     string `json:"host,omitempty" mapstructure:"host" validate:"omitempty,printascii"`
	Port     int    `json:"port,omitempty" mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `json:"user,omitempty" mapstructure:"user"`
	Password string `json:"password,omitempty" mapstructure:"password"`
	Database string `json:"database,omitempty" mapstructure:"database"`

	// mongodb
	URI              string `json:"uri,omitempty" mapstructure:"uri"`
	ModelPath        string `json:"modelPath,omitempty" mapstructure:"model_path"`
	SingleSchemaPath string `json:"singleSchemaPath,omitempty" mapstructure:"single_schema_path"`
}

var validate = validator.New()

func (c DialectConfig) IsRelational() bool {
	return c.Type == DialectPostgres || c.Type == DialectMySQL
}

// Validate checks the field tags, then that exactly the variant's fields
// are populated. An unknown Type passes so the factory can report it.
func (c DialectConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid dialect config: %w", err)
	}

	var required, forbidden map[string]string
	switch c.Type {
	case DialectSQLite:
		required = map[string]string{"file": c.File}
		forbidden = c.networkFields()
		for k, v := range c.mongoFields() {
			forbidden[k] = v
		}
	case DialectPostgres, DialectMySQL:
		required = map[string]string{"host": c.Host, "user": c.User, "database": c.Database}
		if c.Port == 0 {
			return fmt.Errorf("invalid dialect config: %s requires port", c.Type)
		}
		forbidden = c.mongoFields()
		forbidden["file"] = c.File
	case DialectMongoDB:
		required = map[string]string{"uri": c.URI, "database": c.Database}
		forbidden = map[string]string{"file": c.File, "host": c.Host, "user": c.User, "password": c.Password}
		if c.Port != 0 {
			return fmt.Errorf("invalid dialect config: port is not a %s field", c.Type)
		}
	default:
		return nil
	}

	for field, v := range required {
		if v == "" {
			return fmt.Errorf("invalid dialect config: %s requires %s", c.Type, field)
		}
	}
	for field, v := range forbidden {
		if v != "" {
			return fmt.Errorf("invalid dialect config: %s is not a %s field", field, c.Type)
		}
	}
	return nil
}

func (c DialectConfig) networkFields() map[string]string {
	m := map[string]string{"host": c.Host, "user": c.User, "password": c.Password, "database": c.Database}
	if c.Port != 0 {
		m["port"] = fmt.Sprint(c.Port)
	}
	return m
}

func (c DialectConfig) mongoFields() map[string]string {
	return map[string]string{"uri": c.URI, "modelPath": c.ModelPath, "singleSchemaPath": c.SingleSchemaPath}
}

func (c DialectConfig) ToJSON() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode dialect config: %w", err)
	}
	return string(b), nil
}

func ParseDialectConfig(data string) (DialectConfig, error) {
	var c DialectConfig
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return c, fmt.Errorf("failed to decode dialect config: %w", err)
	}
	return c, nil
}
