// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package emergency serves the emergency directory: per-country helpline
// numbers and the nearby facility lookup backed by OpenStreetMap's Overpass API.
package emergency

import (
	"slices"
	"strings"
)

// DefaultCountry is used when the requested country has no entry.
const DefaultCountry = "India"

// ContactType classifies a helpline for the client's icon set.
type ContactType string

const (
	ContactPolice   ContactType = "police"
	ContactHospital ContactType = "hospital"
	ContactFire     ContactType = "fire"
	ContactWomen    ContactType = "women"
	ContactChild    ContactType = "child"
	ContactPoison   ContactType = "poison"
	ContactMental   ContactType = "mental"
)

// Contact is one dialable helpline.
type Contact struct {
	Name        string      `json:"name"`
	Number      string      `json:"number"`
	Type        ContactType `json:"type"`
	Description string      `json:"description,omitempty"`
}

// CountryNumbers is the directory answer for one country.
type CountryNumbers struct {
	Country  string    `json:"country"`
	Contacts []Contact `json:"contacts"`
}

// numberSet lists the helplines of one country. Empty optional lines are omitted.
type numberSet struct {
	police, ambulance, fire      string
	women, child, poison, mental string
}

var directory = map[string]numberSet{
	"India": {
		police: "100", ambulance: "102", fire: "101",
		women: "1091", child: "1098", mental: "1800-599-0019", poison: "1066",
	},
	"Germany": {
		police: "110", ambulance: "112", fire: "112",
		poison: "030 19240", mental: "0800 111 0 111",
	},
	"United States": {
		police: "911", ambulance: "911", fire: "911",
		poison: "1-800-222-1222", mental: "988", child: "1-800-422-4453",
	},
	"United Arab Emirates": {police: "999", ambulance: "998", fire: "997"},
	"China":                {police: "110", ambulance: "120", fire: "119"},
	"Japan":                {police: "110", ambulance: "119", fire: "119"},
	"United Kingdom":       {police: "999", ambulance: "999", fire: "999"},
	"Australia":            {police: "000", ambulance: "000", fire: "000"},
	"Singapore":            {police: "999", ambulance: "995", fire: "995"},
	"Canada":               {police: "911", ambulance: "911", fire: "911"},
	"France":               {police: "17", ambulance: "15", fire: "18"},
}

/*
NumbersFor returns the helplines for country, matched case-insensitively.
Unknown or blank countries resolve to [DefaultCountry].

The three core services always come first, followed by the optional
women, child, poison and mental-health lines in that order.
*/
func NumbersFor(country string) CountryNumbers {
	resolved, set := lookupCountry(strings.TrimSpace(country))

	ambulanceName := "Hospital/Ambulance"
	if resolved == "France" {
		ambulanceName = "SAMU (Medical)"
	}

	contacts := []Contact{
		{Name: "Police", Number: set.police, Type: ContactPolice},
		{Name: ambulanceName, Number: set.ambulance, Type: ContactHospital},
		{Name: "Fire Station", Number: set.fire, Type: ContactFire},
	}

	optional := []struct {
		number  string
		contact Contact
	}{
		{set.women, Contact{Name: "Women Helpline", Type: ContactWomen, Description: "24/7 Women Safety & Support"}},
		{set.child, Contact{Name: "Child Helpline", Type: ContactChild, Description: "Child Protection & Support"}},
		{set.poison, Contact{Name: "Poison Control", Type: ContactPoison, Description: "Poison Emergency & Information"}},
		{set.mental, Contact{Name: "Mental Health", Type: ContactMental, Description: "Mental Health Crisis Support"}},
	}
	for _, line := range optional {
		if line.number == "" {
			continue
		}
		line.contact.Number = line.number
		contacts = append(contacts, line.contact)
	}

	return CountryNumbers{Country: resolved, Contacts: contacts}
}

// Countries returns the names with a dedicated entry, sorted.
func Countries() []string {
	names := make([]string, 0, len(directory))
	for name := range directory {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupCountry(country string) (string, numberSet) {
	if set, ok := directory[country]; ok {
		return country, set
	}
	for name, set := range directory {
		if strings.EqualFold(name, country) {
			return name, set
		}
	}
	return DefaultCountry, directory[DefaultCountry]
}
