package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Type represents one reconcilable vocabulary exposed to OpenRefine as a
// "type". Index is the id.loc.gov path segment the suggest2 endpoint lives
// under. MemberOf and RDFClass are optional upstream filters; empty means no
// filter.
type Type struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Index    string `yaml:"index" json:"index"`
	MemberOf string `yaml:"member,omitempty" json:"member,omitempty"`
	RDFClass string `yaml:"rdftype,omitempty" json:"rdftype,omitempty"`
}

// TypeRef is the {id, name} pair advertised in service metadata.
type TypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const namesCollection = "http://id.loc.gov/authorities/names/collection_NamesAuthorizedHeadings"

// DefaultType is used when a query carries an empty or unrecognized type.
// It searches across all of /authorities.
var DefaultType = Type{
	ID:    "LoC",
	Name:  "LCNAF & LCSH",
	Index: "/authorities",
}

// builtinTypes mirrors the id.loc.gov query indexes. Order matters: metadata
// advertises types in this order, with the default entry last.
var builtinTypes = []Type{
	{
		ID:       "Names",
		Name:     "Library of Congress Name Authority File",
		Index:    "/authorities/names",
		MemberOf: namesCollection,
	},
	{
		ID:       "Names--Personal",
		Name:     "Library of Congress Name Authority File--Personal names only",
		Index:    "/authorities/names",
		MemberOf: namesCollection,
		RDFClass: "PersonalName",
	},
	{
		ID:       "Names--Corporate",
		Name:     "Library of Congress Name Authority File--Corporate names only",
		Index:    "/authorities/names",
		MemberOf: namesCollection,
		RDFClass: "CorporateName",
	},
	{
		ID:       "Names--Conference",
		Name:     "Library of Congress Name Authority File--Conference names only",
		Index:    "/authorities/names",
		MemberOf: namesCollection,
		RDFClass: "ConferenceName",
	},
	{
		ID:       "Names--Geographic",
		Name:     "Library of Congress Name Authority File--Geographic names only",
		Index:    "/authorities/names",
		MemberOf: namesCollection,
		RDFClass: "Geographic",
	},
	{
		ID:       "Names--Titles",
		Name:     "Library of Congress Name Authority File--Titles only",
		Index:    "/authorities/names",
		MemberOf: namesCollection,
		RDFClass: "Title",
	},
	{
		ID:       "Names--Name-Titles",
		Name:     "Library of Congress Name Authority File--Name-Titles only",
		Index:    "/authorities/names",
		MemberOf: namesCollection,
		RDFClass: "NameTitle",
	},
	{
		ID:       "Subjects",
		Name:     "Library of Congress Subject Headings",
		Index:    "/authorities/subjects",
		MemberOf: "http://id.loc.gov/authorities/subjects/collection_LCSHAuthorizedHeadings",
	},
	{
		ID:    "LCGFT",
		Name:  "Library of Congress Genre/Form Terms",
		Index: "/authorities/genreForms",
	},
	{
		ID:    "TGM",
		Name:  "Thesaurus for Graphic Materials",
		Index: "/vocabulary/graphicMaterials",
	},
	{
		ID:    "RBMSCV",
		Name:  "RBMS Controlled Vocabulary for Rare Materials Cataloging",
		Index: "/vocabulary/rbmscv",
	},
	{
		ID:    "LCDGT",
		Name:  "Library of Congress Demographic Group Terms",
		Index: "/authorities/demographicTerms",
	},
	{
		ID:    "MARCLang",
		Name:  "MARC Languages",
		Index: "/vocabulary/languages",
	},
	{
		ID:    "ISO639-2Lang",
		Name:  "ISO 639-2 Languages",
		Index: "/vocabulary/iso639-2",
	},
	{
		ID:    "Relators",
		Name:  "MARC relators",
		Index: "/vocabulary/relators",
	},
	{
		ID:    "RBMS-Relators",
		Name:  "Rare Books and Manuscripts Relationship Designators",
		Index: "/vocabulary/rbmsrel",
	},
	{
		ID:    "LCMPT",
		Name:  "Library of Congress Medium of Performance Thesaurus for Music",
		Index: "/authorities/performanceMediums",
	},
}

// Registry holds the vocabulary table. It is built once at startup and
// read-only afterwards, so lookups need no locking.
type Registry struct {
	types []Type
	byID  map[string]Type
}

// NewRegistry builds a registry from the built-in id.loc.gov table, with the
// default entry appended last.
func NewRegistry() *Registry {
	return newRegistry(builtinTypes)
}

// NewRegistryWithFile builds the registry from the built-in table plus
// additional entries loaded from a YAML file. Loaded entries are appended
// after the built-ins but before the default entry; an entry reusing a
// built-in ID replaces it in place.
func NewRegistryWithFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var extra []Type
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	types := make([]Type, len(builtinTypes), len(builtinTypes)+len(extra))
	copy(types, builtinTypes)
	for _, t := range extra {
		if t.ID == "" || t.Index == "" {
			return nil, fmt.Errorf("vocabulary entry needs both id and index: %+v", t)
		}
		replaced := false
		for i := range types {
			if types[i].ID == t.ID {
				types[i] = t
				replaced = true
				break
			}
		}
		if !replaced {
			types = append(types, t)
		}
	}

	return newRegistry(types), nil
}

func newRegistry(types []Type) *Registry {
	r := &Registry{
		types: append(append([]Type{}, types...), DefaultType),
		byID:  make(map[string]Type, len(types)+1),
	}
	for _, t := range r.types {
		r.byID[t.ID] = t
	}
	return r
}

// Resolve looks up a type by ID. Empty or unrecognized IDs fall back to the
// default entry; a query is never rejected for its type.
func (r *Registry) Resolve(typeID string) Type {
	if t, ok := r.byID[typeID]; ok {
		return t
	}
	return DefaultType
}

// ListAll returns the {id, name} pairs for every registered type in table
// order, default entry last. Used for the metadata defaultTypes list.
func (r *Registry) ListAll() []TypeRef {
	refs := make([]TypeRef, 0, len(r.types))
	for _, t := range r.types {
		refs = append(refs, TypeRef{ID: t.ID, Name: t.Name})
	}
	return refs
}
