package chat

import (
	"context"
	"fmt"
	"sync"
)

// Conversation is a private exchange with one user over their DM channel.
// Ask blocks until the user replies, there is deliberately no per-question
// timeout - an absent owner holds their slot until the transport drops.
type Conversation struct {
	client  *Client
	user    string // user id
	channel string // DM channel id

	replies chan string
	done    chan struct{}
	once    sync.Once
}

// Ask sends the prompt and waits for the user's next message in this
// conversation
func (c *Conversation) Ask(ctx context.Context, prompt string) (string, error) {
	if err := c.client.send(c.channel, prompt); err != nil {
		return "", fmt.Errorf("ask %s: %w", c.user, err)
	}

	select {
	case reply := <-c.replies:
		return reply, nil
	case <-c.done:
		return "", fmt.Errorf("conversation with %s ended", c.user)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Say sends a statement that expects no reply
func (c *Conversation) Say(text string) error {
	if err := c.client.send(c.channel, text); err != nil {
		return fmt.Errorf("say to %s: %w", c.user, err)
	}
	return nil
}

// Close ends the conversation and frees the user for future ones. Safe to
// call more than once.
func (c *Conversation) Close() error {
	c.client.endConversation(c.user)
	c.end()
	return nil
}

// deliver hands an incoming reply to a pending Ask. A reply nobody waits for
// is dropped once the buffer is full, the bot never queues stale input.
func (c *Conversation) deliver(text string) {
	select {
	case c.replies <- text:
	default:
	}
}

// end unblocks any pending Ask, used on Close and on transport failures
func (c *Conversation) end() {
	c.once.Do(func() { close(c.done) })
}
