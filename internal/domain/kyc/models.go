package kyc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an upstream identifier that may arrive as a JSON number or string. It keeps its
// text form and is written back as a number whenever that text is an integer.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("kyc id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer-like ids as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalYAML mirrors UnmarshalJSON for fixture files.
func (id *ID) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*id = ID(fmt.Sprint(raw))
	return nil
}

// Channel is a notification channel as served upstream.
type Channel struct {
	ID         ID     `json:"id" yaml:"id"`
	Label      string `json:"label" yaml:"label"`
	IsSelected bool   `json:"isSelected" yaml:"isSelected"`
}

// Document is a document type inside a verification purpose.
type Document struct {
	ID         ID     `json:"id" yaml:"id"`
	Label      string `json:"label" yaml:"label"`
	IsSelected bool   `json:"isSelected" yaml:"isSelected"`
}

// Purpose is a verification purpose section and its documents. Documents may be empty.
type Purpose struct {
	ID        ID         `json:"id" yaml:"id"`
	Label     string     `json:"label" yaml:"label"`
	Documents []Document `json:"documents" yaml:"documents"`
}

// BlockingRule is the display state for one blocking rule key.
type BlockingRule struct {
	Value      bool `json:"value"`
	IsDisabled bool `json:"isDisabled"`
}

// ChannelState is a channel with its locked flag.
type ChannelState struct {
	Channel
	IsDisabled bool `json:"isDisabled"`
}

// Notification is the display state of the notification block.
type Notification struct {
	Enabled  bool           `json:"enabled"`
	Channels []ChannelState `json:"channels"`
}

// DocumentState is a document with its locked flag.
type DocumentState struct {
	Document
	IsDisabled bool `json:"isDisabled"`
}

// PurposeState is the display state of a verification purpose section.
type PurposeState struct {
	ID        ID              `json:"id"`
	Label     string          `json:"label"`
	Documents []DocumentState `json:"documents"`
}

// Request is the document request payload sent downstream. Empty parts are omitted.
type Request struct {
	Verifies      map[string][]ID `json:"verifies,omitempty"`
	Notification  []ID            `json:"notification,omitempty"`
	BlockingRules map[string]bool `json:"blockingRules,omitempty"`
}
