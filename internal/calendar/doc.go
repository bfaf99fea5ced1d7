// Package calendar provides the Google Calendar client and the sync layer
// that applies extracted events to a calendar.
//
// The client wraps the Calendar API with the operations calscribe needs:
// listing events, duplicate-aware creation, updates and deletes by ID or
// by title/time lookup, and fetching the upcoming-events context that the
// extraction prompt consumes.
//
// Authentication uses the Google OAuth2 flow via a TokenProvider, with
// multi-account support through per-account token files.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cc, err := client.FetchContext(time.Now())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := calendar.SyncEvents(ctx, client, events, cc.IDMap, false)
package calendar
