// Package shipping holds the cart's shipping address state and the form
// validation applied before an address is used.
package shipping

import "strings"

// Info is the shipping address attached to a cart session. All fields
// default to empty; no cross-field invariant exists.
type Info struct {
	Country string `json:"country"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Update carries a partial address; nil fields are left untouched.
type Update struct {
	Country *string `json:"country"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

// Merge shallow-merges an update into the info and returns the result.
func (i Info) Merge(u Update) Info {
	if u.Country != nil {
		i.Country = *u.Country
	}
	if u.State != nil {
		i.State = *u.State
	}
	if u.ZipCode != nil {
		i.ZipCode = *u.ZipCode
	}
	return i
}

func (i Info) trimmed() Info {
	return Info{
		Country: strings.TrimSpace(i.Country),
		State:   strings.TrimSpace(i.State),
		ZipCode: strings.TrimSpace(i.ZipCode),
	}
}
