package aws

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Field names one credential setting
type Field string

const (
	FieldAccessKeyID     Field = "access_key"
	FieldSecretAccessKey Field = "secret_key"
	FieldRegion          Field = "region"
)

// Fields lists every credential setting in display order
var Fields = []Field{FieldAccessKeyID, FieldSecretAccessKey, FieldRegion}

// Setting is a credential value and the name of the source that supplied
// it. A Setting with no Source is unresolved.
type Setting struct {
	Value  string
	Source string
}

// Resolved reports whether any source supplied the setting
func (s Setting) Resolved() bool {
	return s.Source != ""
}

// Credentials holds the resolved access key, secret key and region
type Credentials struct {
	AccessKeyID     Setting
	SecretAccessKey Setting
	Region          Setting
}

// Get returns the setting for field
func (c Credentials) Get(field Field) Setting {
	switch field {
	case FieldAccessKeyID:
		return c.AccessKeyID
	case FieldSecretAccessKey:
		return c.SecretAccessKey
	case FieldRegion:
		return c.Region
	default:
		return Setting{}
	}
}

func (c *Credentials) set(field Field, s Setting) {
	switch field {
	case FieldAccessKeyID:
		c.AccessKeyID = s
	case FieldSecretAccessKey:
		c.SecretAccessKey = s
	case FieldRegion:
		c.Region = s
	}
}

// Missing lists the fields no source could supply
func (c Credentials) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if !c.Get(f).Resolved() {
			missing = append(missing, f)
		}
	}
	return missing
}

// Source supplies credential settings. Lookup returns false when the source
// has nothing for the field.
type Source interface {
	Name() string
	Lookup(field Field) (string, bool)
}

// ResolveCredentials threads every field through sources in order; the last
// source holding a value wins.
func ResolveCredentials(sources ...Source) Credentials {
	var creds Credentials
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, f := range Fields {
			if v, ok := src.Lookup(f); ok {
				creds.set(f, Setting{Value: v, Source: src.Name()})
			}
		}
	}
	return creds
}

type staticSource struct {
	name   string
	values map[Field]string
}

func (s staticSource) Name() string {
	return s.name
}

func (s staticSource) Lookup(field Field) (string, bool) {
	v, ok := s.values[field]
	return v, ok
}

// NewStaticSource returns a Source answering only the non-empty values
func NewStaticSource(name string, values map[Field]string) Source {
	src := staticSource{name: name, values: make(map[Field]string)}
	for f, v := range values {
		if v != "" {
			src.values[f] = v
		}
	}
	return src
}

// CredentialsFileSource reads aws_access_key_id and aws_secret_access_key
// from the profile's section of a shared credentials file. On a read error
// the returned source is empty but usable.
func CredentialsFileSource(path, profile string) (Source, error) {
	name := "credentials file"
	p, err := LoadCredentialsProfile(path, profile)
	if err != nil {
		return staticSource{name: name}, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	src := staticSource{name: name, values: make(map[Field]string)}
	if p == nil {
		return src, nil
	}
	if v, ok := p.Keys["aws_access_key_id"]; ok {
		src.values[FieldAccessKeyID] = v
	}
	if v, ok := p.Keys["aws_secret_access_key"]; ok {
		src.values[FieldSecretAccessKey] = v
	}
	return src, nil
}

// ConfigFileSource reads region from the profile's section of a shared
// config file.
func ConfigFileSource(path, profile string) (Source, error) {
	name := "config file"
	p, err := LoadConfigProfile(path, profile)
	if err != nil {
		return staticSource{name: name}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	src := staticSource{name: name, values: make(map[Field]string)}
	if p == nil {
		return src, nil
	}
	if v, ok := p.Keys["region"]; ok {
		src.values[FieldRegion] = v
	}
	return src, nil
}

type envCredentials struct {
	AccessKeyID     *string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey *string `env:"AWS_SECRET_ACCESS_KEY"`
	Region          *string `env:"AWS_DEFAULT_REGION"`
}

// EnvSource reads AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_DEFAULT_REGION from the process environment.
func EnvSource() (Source, error) {
	var vars envCredentials
	if err := env.Parse(&vars); err != nil {
		return staticSource{name: "environment"}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return vars.source(), nil
}

// EnvSourceFrom is EnvSource over an explicit environment
func EnvSourceFrom(environ map[string]string) (Source, error) {
	var vars envCredentials
	if err := env.ParseWithOptions(&vars, env.Options{Environment: environ}); err != nil {
		return staticSource{name: "environment"}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return vars.source(), nil
}

func (e envCredentials) source() Source {
	src := staticSource{name: "environment", values: make(map[Field]string)}
	for field, v := range map[Field]*string{
		FieldAccessKeyID:     e.AccessKeyID,
		FieldSecretAccessKey: e.SecretAccessKey,
		FieldRegion:          e.Region,
	} {
		// set-but-empty counts as unset
		if v != nil && *v != "" {
			src.values[field] = *v
		}
	}
	return src
}
