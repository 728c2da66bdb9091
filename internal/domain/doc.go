// Package domain contains the core business entities and value objects of
// the roster: people, organizations, memberships and the validated strings
// (Email, Phone, PostalCode, CountryCode) they are built from. It has no
// dependencies on storage or transport.
package domain
