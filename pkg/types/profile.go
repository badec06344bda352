package types

// AWSProfile represents an AWS CLI profile
type AWSProfile struct {
	Name   string
	Region string            // from config file if set
	Source string            // "credentials" or "config"
	Keys   map[string]string // raw key/value pairs of the section
}

// CallerIdentity represents AWS caller identity information
type CallerIdentity struct {
	Account string `json:"account" yaml:"account"`
	Arn     string `json:"arn" yaml:"arn"`
	UserID  string `json:"userId" yaml:"userId"`
}

// CredentialStatus describes how one credential setting was resolved
type CredentialStatus struct {
	Field    string `json:"field" yaml:"field"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"` // masked for secrets
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Resolved bool   `json:"resolved" yaml:"resolved"`
}
