// Package minitalk composes the interactive console client: the raw
// terminal, the line editor, the command dispatcher, the session model and
// the engine, driven by a single-threaded cooperative loop.
package minitalk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"pkt.systems/minitalk/command"
	"pkt.systems/minitalk/core"
	"pkt.systems/minitalk/engine"
	"pkt.systems/minitalk/internal/persist"
	"pkt.systems/minitalk/repl"
	"pkt.systems/minitalk/schema"
	"pkt.systems/pslog"
)

// InputSource delivers raw key bytes without blocking. repl.Terminal is the
// production implementation; tests script their own.
type InputSource interface {
	ReadPending(p []byte) (int, error)
	Close() error
}

// ClientDeps captures the collaborators the client is built from.
type ClientDeps struct {
	Engine engine.Engine
	Store  *persist.Store
	Input  InputSource
	Output io.Writer
	Theme  repl.Theme
	Logger pslog.Logger
}

// Client is the interactive console client.
type Client struct {
	cfg      schema.ClientConfig
	log      pslog.Logger
	eng      engine.Engine
	store    *persist.Store
	session  *core.Session
	registry *command.Registry
	editor   *repl.Editor
	screen   *repl.Screen
	input    InputSource
	out      io.Writer

	sleep func(time.Duration)
	quit  bool
}

// NewClient wires a client together. The engine, input and output are
// required; a nil store disables persistence.
func NewClient(cfg schema.ClientConfig, deps ClientDeps) (*Client, error) {
	cfg, err := schema.NormalizeClientConfig(cfg)
	if err != nil {
		return nil, err
	}
	if deps.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if deps.Input == nil || deps.Output == nil {
		return nil, errors.New("input and output are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}

	c := &Client{
		cfg:     cfg,
		log:     logger,
		eng:     deps.Engine,
		store:   deps.Store,
		session: core.NewSession(logger),
		screen:  repl.NewScreen(deps.Output, deps.Theme),
		input:   deps.Input,
		out:     deps.Output,
		sleep:   time.Sleep,
	}
	c.editor = repl.NewEditor(cfg.LineMax, c.cmdPrompt())
	c.registry = command.NewRegistry(c.screen.Warnf)
	c.registerCommands()
	c.registry.SetAfterDispatch(c.saveData)
	return c, nil
}

// Run bootstraps the engine, bulk-loads contacts and drives the loop until
// Ctrl-D or context cancellation.
func (c *Client) Run(ctx context.Context) error {
	if err := c.eng.Bootstrap(c.cfg.Bootstrap); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	c.loadContacts()

	fmt.Fprint(c.out, "Type `/guide` to print the guide.\n")
	fmt.Fprint(c.out, "Type `/help` to print command list.\n\n")
	c.screen.Infof("* Waiting to be online ...")

	var elapsed time.Duration
	for !c.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if elapsed >= c.cfg.ReplInterval {
			elapsed = 0
			if err := c.replIterate(); err != nil {
				return err
			}
		}
		delay := c.eng.Step()
		c.drainEvents()
		elapsed += delay
		c.sleep(delay)
	}
	return nil
}

// loadContacts pulls self info and the friends restored from savedata into
// the session.
func (c *Client) loadContacts() {
	info := c.eng.SelfInfo()
	self := c.session.Self()
	self.Name = info.Name
	self.StatusText = info.StatusText
	self.PublicKey = info.PublicKey
	self.Address = c.eng.SelfAddress()

	for _, fi := range c.eng.Friends() {
		f := c.session.AddFriend(fi.ID)
		f.Name = fi.Name
		f.StatusText = fi.StatusText
		f.PublicKey = fi.PublicKey
	}
}

// replIterate drains pending input through the editor and redraws the edit
// line afterwards.
func (c *Client) replIterate() error {
	var buf [128]byte
	for {
		n, err := c.input.ReadPending(buf[:])
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
		for _, b := range buf[:n] {
			if b == repl.CtrlD {
				c.quit = true
				return nil
			}
			line, done := c.editor.Feed(b)
			if !done {
				continue
			}
			c.handleLine(line)
			if c.quit {
				return nil
			}
		}
	}
	c.editor.Prompt = c.talkPrompt()
	c.editor.Redraw(c.out)
	return nil
}

// handleLine consumes one completed line: talk-mode text goes to the active
// conversation, everything else is echoed and dispatched as a command.
func (c *Client) handleLine(line string) {
	if c.session.Active() != schema.NoContact && !strings.HasPrefix(line, "/") {
		c.sendToActive(line)
		return
	}

	c.screen.Printf("%s%s", c.cmdPrompt(), line)
	if line == "" {
		return
	}
	if !strings.HasPrefix(line, "/") {
		c.screen.Warnf("! Invalid command, use `/help` to get list of available commands.")
		return
	}
	c.registry.Dispatch(line)
}

// sendToActive appends the line to the active conversation's history, echoes
// it and hands it to the engine as a normal-text message.
func (c *Client) sendToActive(line string) {
	h, ok := c.session.ActiveHistory()
	if !ok {
		c.screen.Errorf("! You are not talking to someone. use `/go` to return to cmd mode")
		return
	}
	msg := c.session.FormatMessage(c.session.Self().Name, line)
	h.Append(msg)
	c.screen.Selff("%s", msg)

	active := c.session.Active()
	var err error
	switch active.Kind() {
	case schema.KindFriend:
		err = c.eng.SendFriendMessage(schema.FriendID(active.LocalID()), schema.MessageNormal, line)
	case schema.KindGroup:
		err = c.eng.SendGroupMessage(schema.GroupID(active.LocalID()), schema.MessageNormal, line)
	}
	if err != nil {
		c.log.Warn("send failed", "contact_index", active, "err", err)
	}
}

// drainEvents applies every queued engine event to the session and renders
// the resulting notices.
func (c *Client) drainEvents() {
	for {
		select {
		case ev := <-c.eng.Events():
			for _, n := range c.session.Apply(ev) {
				c.renderNotice(n)
			}
		default:
			return
		}
	}
}

func (c *Client) renderNotice(n core.Notice) {
	switch n.Level {
	case core.NoticePrint:
		c.screen.Guestf("%s", n.Text)
	case core.NoticeWarn:
		c.screen.Warnf("%s", n.Text)
	default:
		c.screen.Infof("%s", n.Text)
	}
}

// saveData persists the engine's state blob. Runs after every successful
// command dispatch and on /save.
func (c *Client) saveData() {
	if c.store == nil {
		return
	}
	blob := c.eng.Savedata()
	if blob == nil {
		return
	}
	if err := c.store.Save(blob); err != nil {
		c.log.Error("savedata write failed", "err", err)
	}
}

// cmdPrompt is the command-mode prompt, also used as the echo prefix for
// command lines.
func (c *Client) cmdPrompt() string {
	th := c.screen.Theme()
	return th.Prompt + "> " + th.Reset
}

// talkPrompt renders the prompt for the current mode; recomputed every
// redraw so renames and title changes show up without bookkeeping.
func (c *Client) talkPrompt() string {
	active := c.session.Active()
	if active == schema.NoContact {
		return c.cmdPrompt()
	}
	th := c.screen.Theme()
	switch active.Kind() {
	case schema.KindFriend:
		if f, ok := c.session.Friend(schema.FriendID(active.LocalID())); ok {
			return fmt.Sprintf("%s%-.12s << %s", th.Prompt, f.Name, th.Reset)
		}
	case schema.KindGroup:
		if g, ok := c.session.Group(schema.GroupID(active.LocalID())); ok {
			return fmt.Sprintf("%s%-.12s <<< %s", th.Prompt, g.Title, th.Reset)
		}
	}
	return c.cmdPrompt()
}
