// Package marvel is the client for the public Marvel comics catalog API.
//
// It covers three concerns:
//
//   - Authentication: every server-side call carries a timestamp, the public key and
//     an MD5 digest of timestamp + private key + public key (see Sign).
//   - Paged listing: ListPage fetches one page of a collection endpoint and returns the
//     raw records together with the server-reported total.
//   - Record mapping: DecodeCharacter and DecodeComic turn raw records into typed values,
//     failing with a shape error when an expected field is absent.
//
// # Usage
//
//	client, err := marvel.NewClient(cfg.Marvel, logger)
//	page, err := client.ListPage(ctx, marvel.KindCharacters, 0, 100)
//	for _, raw := range page.Results {
//	    c, err := marvel.DecodeCharacter(raw)
//	}
package marvel
