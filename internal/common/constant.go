// Package common contains shared constants and error values used across
// the files manager components.
package common

// TokenHeaderName is the HTTP header carrying the session token.
const TokenHeaderName = "X-Token"

// RootParentID is the parentId sentinel for top-level records.
const RootParentID = "0"

// PageSize is the fixed number of records returned per listing page.
const PageSize = 20
