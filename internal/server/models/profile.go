package models

import (
	"encoding/json"
	"fmt"
)

// Profile is the per-user document behind /api/profile. Only the fields
// declared here are stored; anything else in a request is dropped.
type Profile struct {
	UserID    string   `json:"userId,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Company   *Company `json:"company,omitempty"`
}

type Company struct {
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	VATNumber   string   `json:"vatNumber,omitempty"`
	KVKNumber   string   `json:"kvkNumber,omitempty"`
	BankAccount string   `json:"bankAccount,omitempty"`
	BankName    string   `json:"bankName,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

type Address struct {
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	City     string `json:"city,omitempty"`
}

// Top-level keys of the stored profile document.
const (
	ProfileKeyUserID    = "userId"
	ProfileKeyFirstName = "firstName"
	ProfileKeyLastName  = "lastName"
	ProfileKeyCompany   = "company"
)

// ProfilePatch is a profile write: the top-level fields present in the
// request, in JSON form. Presence is what matters, so an explicit "" or
// null is kept and later replaces the stored value. Unknown keys are
// dropped; values are normalised through the profile schema.
type ProfilePatch struct {
	fields map[string]json.RawMessage
}

// ParseProfilePatch decodes a JSON object into a patch.
func ParseProfilePatch(b []byte) (*ProfilePatch, error) {
	p := &ProfilePatch{}
	if err := json.Unmarshal(b, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *ProfilePatch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	p.fields = make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		var norm any
		switch key {
		case ProfileKeyFirstName, ProfileKeyLastName:
			norm = new(*string)
		case ProfileKeyCompany:
			norm = new(*Company)
		default:
			// userId is owned by the server, the rest is not in the schema.
			continue
		}
		if err := json.Unmarshal(value, norm); err != nil {
			return fmt.Errorf("profile field %q: %w", key, err)
		}
		out, err := json.Marshal(norm)
		if err != nil {
			return fmt.Errorf("profile field %q: %w", key, err)
		}
		p.fields[key] = out
	}
	return nil
}

func (p ProfilePatch) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.fields)
}

// SetUserID stamps the owner into the patch.
func (p *ProfilePatch) SetUserID(id string) {
	if p.fields == nil {
		p.fields = map[string]json.RawMessage{}
	}
	b, _ := json.Marshal(id)
	p.fields[ProfileKeyUserID] = b
}

// Has reports whether key was present in the write.
func (p *ProfilePatch) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.fields[key]
	return ok
}

// OverlayProfile applies patch on top of base one top-level field at a time:
// a field present in patch replaces the stored value wholesale, even when it
// is empty or null, and absent fields are kept. Nested objects are not merged,
// so a patch carrying "company" without "company.address" drops the stored
// address. This is the same rule as PostgreSQL's jsonb "||" operator used by
// the database store. A nil patch returns a copy of base.
func OverlayProfile(base *Profile, patch *ProfilePatch) (*Profile, error) {
	merged := map[string]json.RawMessage{}
	if base != nil {
		b, err := json.Marshal(base)
		if err != nil {
			return nil, fmt.Errorf("encode profile: %w", err)
		}
		if err := json.Unmarshal(b, &merged); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}
	if patch != nil {
		for k, v := range patch.fields {
			merged[k] = v
		}
	}

	b, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	out := &Profile{}
	if err := json.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return out, nil
}
