package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/calscribe/calscribe/internal/google"
	"github.com/calscribe/calscribe/internal/model"
)

// searchWindow bounds the lookup around an event's start time when
// checking for duplicates or resolving update/delete targets.
const searchWindow = 24 * time.Hour

// Client wraps the Google Calendar service
type Client struct {
	svc           *calendar.Service
	account       string // The account this client is associated with
	tokenProvider google.TokenProvider
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccountWithProvider checks if a valid OAuth token exists for the specified account
func HasTokenForAccountWithProvider(account string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForAccount(account)
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	provider := google.NewFileTokenProvider()
	return HasTokenForAccountWithProvider(account, provider)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// NewClientForAccountWithProvider creates a new Calendar client with OAuth2 authentication for a specific account
// The OAuth token is retrieved from the provided token provider
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a new Calendar client with OAuth2 authentication for a specific account
// Uses the default file-based token provider
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	provider := google.NewFileTokenProvider()
	return NewClientForAccountWithProvider(ctx, account, provider)
}

// NewClient creates a new Calendar client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// NewClientWithProvider creates a new Calendar client with OAuth2 authentication for the default account
// using the provided token provider
func NewClientWithProvider(ctx context.Context, provider google.TokenProvider) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, "default", provider)
}

// ListEvents lists events on the primary calendar within a time range,
// following pagination until the window is exhausted.
func (c *Client) ListEvents(timeMin, timeMax time.Time) ([]EventSummary, error) {
	var events []EventSummary
	pageToken := ""

	for {
		call := c.svc.Events.List("primary").
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		for _, ev := range resp.Items {
			events = append(events, toEventSummary(ev))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// GetEvent fetches a single event by ID from the primary calendar.
func (c *Client) GetEvent(eventID string) (*EventSummary, error) {
	ev, err := c.svc.Events.Get("primary", eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	summary := toEventSummary(ev)
	return &summary, nil
}

// CreateEvent inserts a validated event on the primary calendar. An event
// with the same title (case-insensitive) overlapping the same time is
// treated as a duplicate and not created; the existing event is returned
// along with created=false.
func (c *Client) CreateEvent(ev model.ValidatedEvent) (*EventSummary, bool, error) {
	nearby, err := c.ListEvents(ev.Start.Add(-searchWindow), ev.Start.Add(searchWindow))
	if err != nil {
		return nil, false, fmt.Errorf("duplicate check failed: %w", err)
	}

	for i := range nearby {
		if isDuplicate(ev, nearby[i]) {
			return &nearby[i], false, nil
		}
	}

	resource := toEventResource(ev)
	inserted, err := c.svc.Events.Insert("primary", resource).Do()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create event: %w", err)
	}

	summary := toEventSummary(inserted)
	return &summary, true, nil
}

// UpdateEventByID patches an existing event with the fields of ev.
func (c *Client) UpdateEventByID(eventID string, ev model.ValidatedEvent) (*EventSummary, error) {
	resource := toEventResource(ev)

	updated, err := c.svc.Events.Patch("primary", eventID, resource).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", eventID, err)
	}

	summary := toEventSummary(updated)
	return &summary, nil
}

// DeleteEventByID removes an event from the primary calendar.
func (c *Client) DeleteEventByID(eventID string) error {
	if err := c.svc.Events.Delete("primary", eventID).Do(); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

// FindAndUpdateEvent locates an event by title and time proximity and
// updates it. Returns nil when no matching event exists.
func (c *Client) FindAndUpdateEvent(ev model.ValidatedEvent) (*EventSummary, error) {
	target, err := c.findByTitleAndTime(ev)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}
	return c.UpdateEventByID(target.ID, ev)
}

// FindAndDeleteEvent locates an event by title and time proximity and
// deletes it. Returns false when no matching event exists.
func (c *Client) FindAndDeleteEvent(ev model.ValidatedEvent) (bool, error) {
	target, err := c.findByTitleAndTime(ev)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, nil
	}
	if err := c.DeleteEventByID(target.ID); err != nil {
		return false, err
	}
	return true, nil
}

// findByTitleAndTime searches the window around ev's start for an event
// whose title matches case-insensitively and whose time range overlaps.
func (c *Client) findByTitleAndTime(ev model.ValidatedEvent) (*EventSummary, error) {
	nearby, err := c.ListEvents(ev.Start.Add(-searchWindow), ev.Start.Add(searchWindow))
	if err != nil {
		return nil, fmt.Errorf("event lookup failed: %w", err)
	}

	for i := range nearby {
		if isDuplicate(ev, nearby[i]) {
			return &nearby[i], nil
		}
	}
	return nil, nil
}

// isDuplicate reports whether an existing calendar event matches the
// candidate: same title ignoring case, with overlapping time ranges.
func isDuplicate(ev model.ValidatedEvent, existing EventSummary) bool {
	if !strings.EqualFold(strings.TrimSpace(ev.Title), strings.TrimSpace(existing.Summary)) {
		return false
	}
	if existing.Start.IsZero() || existing.End.IsZero() {
		return false
	}
	return overlaps(ev.Start, ev.End, existing.Start, existing.End)
}

// toEventResource builds the API resource for a validated event.
func toEventResource(ev model.ValidatedEvent) *calendar.Event {
	resource := &calendar.Event{
		Summary:     ev.Title,
		Location:    ev.Location,
		Description: ev.Reasoning,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
		},
	}

	for _, email := range ev.Attendees {
		if !strings.Contains(email, "@") {
			// Names without addresses cannot be invited.
			continue
		}
		resource.Attendees = append(resource.Attendees, &calendar.EventAttendee{Email: email})
	}

	return resource
}
