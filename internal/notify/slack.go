package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/realchief/RenderShotPanel/internal/config"
)

const slackPostURL = "https://slack.com/api/chat.postMessage"

// SlackClient posts lifecycle events to the team chat. With no token
// configured every call is a no-op; failures are logged and swallowed.
type SlackClient struct {
	token         string
	userName      string
	channel       string
	ticketChannel string
	client        *http.Client
}

func NewSlackClient(cfg *config.Config) *SlackClient {
	return &SlackClient{
		token:         cfg.SlackToken,
		userName:      cfg.SlackUserName,
		channel:       cfg.SlackChannel,
		ticketChannel: cfg.SlackTicketChannel,
		client:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SlackClient) Post(msg *SlackMessage) {
	if s == nil || s.token == "" || msg == nil {
		return
	}

	channel := s.channel
	if msg.Ticket {
		channel = s.ticketChannel
	}

	blocks := []map[string]any{
		{"type": "divider"},
		{"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": fmt.Sprintf("*%s*\n%s", msg.Event, formatData(msg.Data)),
			}},
	}

	rawBlocks, err := json.Marshal(blocks)
	if err != nil {
		log.Printf("[slack] marshal blocks: %v", err)
		return
	}

	form := url.Values{
		"token":    {s.token},
		"channel":  {channel},
		"text":     {msg.Event},
		"username": {s.userName},
		"blocks":   {string(rawBlocks)},
	}

	resp, err := s.client.PostForm(slackPostURL, form)
	if err != nil {
		log.Printf("[slack] post %q: %v", msg.Event, err)
		return
	}
	resp.Body.Close()
}

// formatData flattens top-level scalar values, one per line, in a
// stable key order. Nested maps are skipped.
func formatData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k, v := range data {
		if _, nested := v.(map[string]any); nested {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s : %v\n", k, data[k])
	}
	return b.String()
}
