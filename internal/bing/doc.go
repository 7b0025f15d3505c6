// Package bing resolves daily wallpaper metadata from the
// bing.biturl.top JSON endpoint.
//
// The package handles two concerns:
//
//  1. Querying the endpoint for a day-index and decoding the record
//  2. Splitting the record's combined description into title and copyright
//
// # Resolving a Record
//
//	resolver := bing.NewResolver(client, bing.DefaultEndpoint, bing.DefaultQuery(), log)
//	rec, err := resolver.Resolve(ctx, 0) // 0 = today
//	if errors.Is(err, bing.ErrNoRecord) {
//	    // expected when the provider is down or returns junk
//	}
//
// # Description Format
//
// The provider packs title and attribution into one string:
//
//	"Sunset over the bay (© Jane Doe/Getty Images)"
//
// ParseDescription splits it into {Title: "Sunset over the bay",
// Copyright: "Jane Doe/Getty Images"}.
package bing
