package notify

import (
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkRecorder struct {
	mu        sync.Mutex
	published []LiveMessage
	broadcast []LiveMessage
	delivered chan struct{}
}

func newSinkRecorder() *sinkRecorder {
	return &sinkRecorder{delivered: make(chan struct{}, 16)}
}

func (r *sinkRecorder) Publish(user uint, group string, data map[string]any) {
	r.mu.Lock()
	r.published = append(r.published, LiveMessage{Group: group, User: user, Data: data})
	r.mu.Unlock()
	r.delivered <- struct{}{}
}

func (r *sinkRecorder) Broadcast(group string, data map[string]any) {
	r.mu.Lock()
	r.broadcast = append(r.broadcast, LiveMessage{Group: group, Data: data})
	r.mu.Unlock()
	r.delivered <- struct{}{}
}

func (r *sinkRecorder) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.delivered:
		case <-time.After(2 * time.Second):
			t.Fatalf("delivery %d/%d never happened", i+1, n)
		}
	}
}

func testConfig() *config.Config {
	return &config.Config{SlackUserName: "rendershot", NotifyWorkers: 2, NotifyQueue: 8}
}

func TestDispatcherFansOutLiveMessages(t *testing.T) {
	sink := newSinkRecorder()
	d := NewDispatcher(sink, NewSlackClient(testConfig()), NewMailer(testConfig()), 2, 8)
	defer d.Stop()

	d.Dispatch(Event{
		Name: "on_submitted",
		Live: []LiveMessage{
			{Group: config.GroupJobs, User: 1, Data: map[string]any{"action": "add_job"}},
			{Group: config.GroupAdmin, Data: map[string]any{"action": "on_submitted"}},
		},
	})

	sink.wait(t, 2)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.published, 1)
	assert.Equal(t, uint(1), sink.published[0].User)
	require.Len(t, sink.broadcast, 1)
	assert.Equal(t, config.GroupAdmin, sink.broadcast[0].Group)
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	sink := newSinkRecorder()
	// zero workers: nothing drains the queue
	d := &Dispatcher{hub: sink, events: make(chan Event, 1)}

	d.Dispatch(Event{Name: "first"})
	d.Dispatch(Event{Name: "second"}) // dropped, must not block

	assert.Len(t, d.events, 1)
}

func TestSlackClientNoTokenIsNoop(t *testing.T) {
	client := NewSlackClient(testConfig())

	// must not attempt any network call
	client.Post(&SlackMessage{Event: "on_submitted", Data: map[string]any{"user": "artist"}})
	client.Post(nil)
}

func TestFormatDataStableOrder(t *testing.T) {
	out := formatData(map[string]any{
		"user":   "artist",
		"name":   "scene_1",
		"nested": map[string]any{"skipped": true},
	})

	assert.Equal(t, "name : scene_1\nuser : artist\n", out)
}

func TestMailerSwappableTransport(t *testing.T) {
	cfg := testConfig()
	cfg.SMTPHost = "smtp.example.com"
	cfg.SMTPPort = "587"
	cfg.SMTPFrom = "noreply@rendershot.local"
	cfg.SiteName = "RenderShot"
	cfg.SiteDomain = "rendershot.local"

	m := NewMailer(cfg)

	var gotAddr, gotFrom, gotBody string
	var gotTo []string
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, string(msg)
		return nil
	}

	m.Send(&EmailMessage{
		To:         "artist@example.com",
		Subject:    "Update scene_1 is Completed",
		Body:       "Your job scene_1 is Completed.",
		ActionText: "Job List",
		ActionURL:  "/jobs",
	})

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@rendershot.local", gotFrom)
	assert.Equal(t, []string{"artist@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Subject: Update scene_1 is Completed")
	assert.Contains(t, gotBody, "https://rendershot.local/jobs")
}

func TestMailerNoHostIsNoop(t *testing.T) {
	m := NewMailer(testConfig())

	called := false
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	m.Send(&EmailMessage{To: "artist@example.com", Subject: "x"})
	assert.False(t, called)
}
