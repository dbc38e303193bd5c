// Package slug turns free text into URL and DNS safe identifiers.
//
// The company name typed at signup becomes the tenant subdomain:
//
//	slug.Make("Café & Associés")                 // "cafe-associes"
//	slug.Make("Ørsted Talent", slug.MaxLength(6)) // "orsted"
//
// Diacritics are folded to ASCII, anything outside [a-z0-9] becomes the
// separator, and runs of separators collapse. ReservedSlugs and WithSuffix
// append a random lowercase alphanumeric suffix:
//
//	slug.Make("API", slug.ReservedSlugs("www", "api", "app")) // "api-k7x2m4"
package slug
