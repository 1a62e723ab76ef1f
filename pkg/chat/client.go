package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/gorilla/websocket"

	"github.com/umputun/kippino/pkg/domain"
	"github.com/umputun/kippino/pkg/scheduler"
)

// Client talks to a Slack-compatible chat backend: REST calls for the user
// directory, DM channels and reactions, an RTM websocket for real-time
// messages. One Client serves all conversations, incoming messages are routed
// to the active conversation of their sender or, outside conversations, to
// the administrative command dispatcher.
type Client struct {
	token    string
	apiURL   string
	client   *http.Client
	commands *Commands

	mu      sync.Mutex
	ws      *websocket.Conn
	selfID  string
	convos  map[string]*Conversation // keyed by user id
	counter int64                    // outgoing rtm message ids
}

// Params holds chat client configuration
type Params struct {
	Token    string
	APIURL   string // base REST endpoint, default https://slack.com/api
	Timeout  time.Duration
	Commands *Commands
}

// New creates a chat client, not yet connected
func New(p Params) *Client {
	if p.APIURL == "" {
		p.APIURL = "https://slack.com/api"
	}
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
	return &Client{
		token:    p.Token,
		apiURL:   strings.TrimRight(p.APIURL, "/"),
		client:   &http.Client{Timeout: p.Timeout},
		commands: p.Commands,
		convos:   map[string]*Conversation{},
	}
}

// apiResponse is the common ok/error envelope of every REST response
type apiResponse struct {
	OK  bool   `json:"ok"`
	Err string `json:"error"`
}

func (r apiResponse) status() (ok bool, errMsg string) { return r.OK, r.Err }

// apiStatus is implemented by embedding apiResponse
type apiStatus interface {
	status() (ok bool, errMsg string)
}

// rtmEvent is the minimal shape of an RTM websocket event
type rtmEvent struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
	User    string `json:"user,omitempty"`
	Text    string `json:"text,omitempty"`
	TS      string `json:"ts,omitempty"`
}

// outgoingMessage is an RTM message to send
type outgoingMessage struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// Run connects to the RTM gateway and processes events until the context is
// canceled, reconnecting with a backoff on transport failures. Active
// conversations are failed on disconnect, their users get re-asked on a
// later scheduling pass.
func (c *Client) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := c.runOnce(ctx); err != nil {
			if ctx.Err() != nil {
				lgr.Printf("[INFO] chat client stopped")
				return nil
			}
			lgr.Printf("[WARN] chat connection lost: %v, reconnecting in %v", err, backoff)
		}

		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] chat client stopped")
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// runOnce performs a single connect-and-read session
func (c *Client) runOnce(ctx context.Context) error {
	var resp struct {
		apiResponse
		URL  string `json:"url"`
		Self struct {
			ID string `json:"id"`
		} `json:"self"`
	}
	if err := c.apiCall(ctx, "rtm.connect", url.Values{}, &resp); err != nil {
		return fmt.Errorf("rtm connect: %w", err)
	}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, resp.URL, nil)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}

	c.mu.Lock()
	c.ws = ws
	c.selfID = resp.Self.ID
	c.mu.Unlock()

	lgr.Printf("[INFO] connected to chat gateway as %s", resp.Self.ID)

	// the read loop owns the connection, a context cancel closes it from
	// the outside to unblock ReadMessage
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = ws.Close()
		case <-done:
		}
	}()

	// rtm-level keepalive, the server answers with pong events which the
	// read loop discards with the rest of the non-message traffic
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.sendPing(); err != nil {
					lgr.Printf("[WARN] keepalive ping failed: %v", err)
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	err = c.readLoop(ctx, ws)
	c.failConversations(err)
	return err
}

// readLoop decodes and routes gateway events until the connection dies
func (c *Client) readLoop(ctx context.Context, ws *websocket.Conn) error {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("read gateway event: %w", err)
		}

		var ev rtmEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			lgr.Printf("[WARN] can't decode gateway event: %v", err)
			continue
		}
		if ev.Type != "message" || ev.User == "" || ev.User == c.self() {
			continue
		}
		c.routeMessage(ctx, ev)
	}
}

// routeMessage delivers a message to its active conversation or to the
// command dispatcher for direct messages outside any conversation
func (c *Client) routeMessage(ctx context.Context, ev rtmEvent) {
	c.mu.Lock()
	convo, engaged := c.convos[ev.User]
	c.mu.Unlock()

	if engaged && convo.channel == ev.Channel {
		convo.deliver(ev.Text)
		return
	}

	// administrative commands are accepted on direct messages only
	if c.commands == nil || !strings.HasPrefix(ev.Channel, "D") {
		return
	}

	say := func(text string) {
		if err := c.send(ev.Channel, text); err != nil {
			lgr.Printf("[WARN] failed to reply in %s: %v", ev.Channel, err)
		}
	}
	react := func() {
		if err := c.AddReaction(ctx, ev.Channel, ev.TS, "robot_face"); err != nil {
			lgr.Printf("[WARN] failed to add reaction: %v", err)
		}
	}
	if !c.commands.Dispatch(ctx, say, react, ev.Text) {
		lgr.Printf("[DEBUG] ignoring message from %s: %q", ev.User, ev.Text)
	}
}

// ListUsers returns all human, non-deleted users from the directory
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var resp struct {
		apiResponse
		Members []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Deleted bool   `json:"deleted"`
			IsBot   bool   `json:"is_bot"`
		} `json:"members"`
	}
	if err := c.apiCall(ctx, "users.list", url.Values{}, &resp); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(resp.Members))
	for _, m := range resp.Members {
		if m.Deleted || m.IsBot {
			continue
		}
		users = append(users, domain.User{ID: m.ID, Name: m.Name})
	}
	return users, nil
}

// StartConversation opens a private conversation with the user. At most one
// conversation per user, a second attempt fails until the first one closes.
func (c *Client) StartConversation(ctx context.Context, userID string) (scheduler.Conversation, error) {
	var resp struct {
		apiResponse
		Channel struct {
			ID string `json:"id"`
		} `json:"channel"`
	}
	params := url.Values{}
	params.Set("users", userID)
	if err := c.apiCall(ctx, "conversations.open", params, &resp); err != nil {
		return nil, fmt.Errorf("open dm with %s: %w", userID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, engaged := c.convos[userID]; engaged {
		return nil, fmt.Errorf("conversation with %s already active", userID)
	}

	convo := &Conversation{
		client:  c,
		user:    userID,
		channel: resp.Channel.ID,
		replies: make(chan string, 16),
		done:    make(chan struct{}),
	}
	c.convos[userID] = convo
	return convo, nil
}

// AddReaction attaches an emoji reaction to a message
func (c *Client) AddReaction(ctx context.Context, channel, ts, name string) error {
	var resp struct {
		apiResponse
	}
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("timestamp", ts)
	params.Set("name", name)
	if err := c.apiCall(ctx, "reactions.add", params, &resp); err != nil {
		return fmt.Errorf("add reaction: %w", err)
	}
	return nil
}

// send writes an RTM message, serialized because gorilla connections allow a
// single concurrent writer
func (c *Client) send(channel, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return fmt.Errorf("not connected")
	}
	c.counter++
	msg := outgoingMessage{ID: c.counter, Type: "message", Channel: channel, Text: text}
	if err := c.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// sendPing writes an rtm ping frame
func (c *Client) sendPing() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return fmt.Errorf("not connected")
	}
	c.counter++
	return c.ws.WriteJSON(map[string]interface{}{"id": c.counter, "type": "ping"})
}

func (c *Client) self() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selfID
}

// endConversation removes the conversation from the routing table
func (c *Client) endConversation(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.convos, userID)
}

// failConversations terminates all active conversations after a transport
// failure, pending Ask calls unblock with an error
func (c *Client) failConversations(err error) {
	c.mu.Lock()
	convos := make([]*Conversation, 0, len(c.convos))
	for _, convo := range c.convos {
		convos = append(convos, convo)
	}
	c.convos = map[string]*Conversation{}
	c.mu.Unlock()

	for _, convo := range convos {
		lgr.Printf("[WARN] ending conversation with %s: %v", convo.user, err)
		convo.end()
	}
}

// apiCall performs a form-encoded REST call, decoding the JSON response and
// turning ok=false into an error
func (c *Client) apiCall(ctx context.Context, method string, params url.Values, v apiStatus) error {
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/"+method,
		strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("make request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close() //nolint:errcheck // nothing useful to do with close error

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", method, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}

	if ok, errMsg := v.status(); !ok {
		return fmt.Errorf("call %s: api error %q", method, errMsg)
	}
	return nil
}
