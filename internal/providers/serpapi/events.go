package serpapi

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sandevgo/caliando/internal/core"
)

type eventsResponse struct {
	EventsResults []struct {
		Title       string     `json:"title"`
		Date        eventDate  `json:"date"`
		Description string     `json:"description"`
		Venue       eventVenue `json:"venue"`
		Link        string     `json:"link"`
	} `json:"events_results"`
}

// eventDate tolerates both the structured {"when": ...} form and a bare
// string, which SerpApi alternates between.
type eventDate struct {
	When string
}

func (d *eventDate) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		d.When = string(data[1 : len(data)-1])
		return nil
	}
	var obj struct {
		When string `json:"when"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	d.When = obj.When
	return nil
}

type eventVenue struct {
	Name string
}

func (v *eventVenue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		v.Name = string(data[1 : len(data)-1])
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	v.Name = obj.Name
	return nil
}

// LiveEvents looks up nearby events for the query, capped at eventLimit.
func (c *Client) LiveEvents(ctx context.Context, query string) ([]core.LiveEvent, error) {
	params := url.Values{}
	params.Set("engine", "google_events")
	params.Set("q", query)
	params.Set("location", c.location)
	params.Set("hl", "es")

	var resp eventsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	results := resp.EventsResults
	if len(results) > eventLimit {
		results = results[:eventLimit]
	}

	events := make([]core.LiveEvent, 0, len(results))
	for _, ev := range results {
		events = append(events, core.LiveEvent{
			Title:       ev.Title,
			Date:        ev.Date.When,
			Venue:       ev.Venue.Name,
			Description: ev.Description,
			Link:        ev.Link,
		})
	}
	return events, nil
}
