package model

// Guest represents a hotel client.  Guests are identified internally by
// a sequential numeric ID and externally by their identity document
// (national ID, passport…), which is the natural key: no two guests may
// share a document.  Guests are created on demand and edited, never
// deleted.
//
// Fields:
//  ID       – immutable unique identifier, monotonically assigned.
//  Name     – full name, mutable.
//  Document – identity document, unique across all guests.
type Guest struct {
    ID       uint64 `json:"id"`       // guests.id
    Name     string `json:"name"`     // guests.name
    Document string `json:"document"` // guests.document (natural key)
}
