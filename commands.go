package minitalk

import (
	"strconv"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"pkt.systems/minitalk/command"
	"pkt.systems/minitalk/core"
	"pkt.systems/minitalk/schema"
)

func (c *Client) registerCommands() {
	c.registry.Register(
		command.Command{
			Name:    "guide",
			Desc:    "- print the guide",
			Handler: c.cmdGuide,
		},
		command.Command{
			Name:    "help",
			Desc:    "- print this message.",
			Handler: c.cmdHelp,
		},
		command.Command{
			Name:    "save",
			Desc:    "- save your data.",
			Handler: c.cmdSave,
		},
		command.Command{
			Name:     "info",
			Desc:     "[<contact_index>] - show one contact's info, or yourself's info if <contact_index> is empty.",
			NArg:     1,
			Variadic: true,
			Handler:  c.cmdInfo,
		},
		command.Command{
			Name:    "setname",
			Desc:    "<name> - set your name",
			NArg:    1,
			Handler: c.cmdSetName,
		},
		command.Command{
			Name:    "setstmsg",
			Desc:    "<status_message> - set your status message.",
			NArg:    1,
			Handler: c.cmdSetStatusMessage,
		},
		command.Command{
			Name:    "add",
			Desc:    "<address> <msg> - add friend",
			NArg:    2,
			Handler: c.cmdAdd,
		},
		command.Command{
			Name:    "del",
			Desc:    "<contact_index> - del a contact.",
			NArg:    1,
			Handler: c.cmdDel,
		},
		command.Command{
			Name:    "contacts",
			Desc:    "- list your contacts(friends and groups).",
			Handler: c.cmdContacts,
		},
		command.Command{
			Name:     "go",
			Desc:     "[<contact_index>] - goto talk to a contact, or goto cmd mode if <contact_index> is empty.",
			NArg:     1,
			Variadic: true,
			Handler:  c.cmdGo,
		},
		command.Command{
			Name:     "history",
			Desc:     "[<n>] - show previous <n> items(default:20) of current chat history",
			NArg:     1,
			Variadic: true,
			Handler:  c.cmdHistory,
		},
		command.Command{
			Name:     "accept",
			Desc:     "[<request_index>] - accept or list(if no <request_index> was provided) friend/group requests.",
			NArg:     1,
			Variadic: true,
			Handler:  c.cmdAccept,
		},
		command.Command{
			Name:     "deny",
			Desc:     "[<request_index>] - deny or list(if no <request_index> was provided) friend/group requests.",
			NArg:     1,
			Variadic: true,
			Handler:  c.cmdDeny,
		},
		command.Command{
			Name:     "invite",
			Desc:     "<friend_contact_index> [<group_contact_index>] - invite a friend to a group chat. default: create a group.",
			NArg:     2,
			Variadic: true,
			MinArg:   1,
			Handler:  c.cmdInvite,
		},
		command.Command{
			Name:    "settitle",
			Desc:    "<group_contact_index> <title> - set group title.",
			NArg:    2,
			Handler: c.cmdSetTitle,
		},
	)
}

func parseIndex(s string) (uint32, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func (c *Client) cmdGuide([]string) {
	c.screen.Printf("This program is a minimal workable peer-to-peer messaging client.")
	c.screen.Printf("As it pursues simplicity at the cost of robustness and efficiency,")
	c.screen.Printf("it should only be used for learning or playing with, instead of daily use.\n")

	c.screen.Printf("Commands are any input lines with leading `/`,")
	c.screen.Printf("command args are separated by blanks,")
	c.screen.Printf("while some special commands may accept any-character string, like `/setname` and `/setstmsg`.\n")

	c.screen.Printf("Use `/setname <YOUR NAME>` to set your name.")
	c.screen.Printf("Use `/info` to see your name, address and network connection.")
	c.screen.Printf("Use `/contacts` to list friends and groups, and use `/go <TARGET>` to talk to one of them.")
	c.screen.Printf("Finally, use `/help` to get a list of available commands.\n")

	c.screen.Printf("HAVE FUN!\n")
}

func (c *Client) cmdHelp([]string) {
	for _, cmd := range c.registry.Commands() {
		if cmd.Name == "guide" {
			continue
		}
		c.screen.Printf("%-16s%s", "/"+cmd.Name, cmd.Desc)
	}
}

func (c *Client) cmdSave([]string) {
	c.saveData()
}

func (c *Client) cmdInfo(args []string) {
	if len(args) == 0 {
		self := c.session.Self()
		c.screen.Printf("%-15s%s", "Name:", self.Name)
		c.screen.Printf("%-15s%s", "Address:", self.Address.Hex())
		c.screen.Printf("%-15s%s", "Public Key:", self.PublicKey.Hex())
		c.screen.Printf("%-15s%s", "Status Msg:", self.StatusText)
		c.screen.Printf("%-15s%s", "Network:", self.Conn)
		c.screen.Printf("")
		qrterminal.GenerateHalfBlock(self.Address.Hex(), qrterminal.L, c.out)
		return
	}

	n, ok := parseIndex(args[0])
	if !ok {
		c.screen.Warnf("^ Invalid contact index")
		return
	}
	idx := schema.ContactIndex(n)
	switch idx.Kind() {
	case schema.KindFriend:
		if f, ok := c.session.Friend(schema.FriendID(idx.LocalID())); ok {
			c.screen.Printf("%-15s%s", "Name:", f.Name)
			c.screen.Printf("%-15s%s", "Public Key:", f.PublicKey.Hex())
			c.screen.Printf("%-15s%s", "Status Msg:", f.StatusText)
			c.screen.Printf("%-15s%s", "Network:", f.Conn)
			return
		}
	case schema.KindGroup:
		if g, ok := c.session.Group(schema.GroupID(idx.LocalID())); ok {
			c.screen.Printf("GROUP TITLE:\t%s", g.Title)
			c.screen.Printf("PEER COUNT:\t%d", len(g.Peers))
			c.screen.Printf("Peers:")
			for _, p := range g.Peers {
				c.screen.Printf("\t%s", p.Name)
			}
			return
		}
	}
	c.screen.Warnf("^ Invalid contact index")
}

func (c *Client) cmdSetName(args []string) {
	if err := c.eng.SetName(args[0]); err != nil {
		c.screen.Errorf("! %v", err)
		return
	}
	c.session.Self().Name = args[0]
}

func (c *Client) cmdSetStatusMessage(args []string) {
	if err := c.eng.SetStatusText(args[0]); err != nil {
		c.screen.Errorf("! %v", err)
		return
	}
	c.session.Self().StatusText = args[0]
}

func (c *Client) cmdAdd(args []string) {
	addr, err := schema.ParseAddress(args[0])
	if err != nil {
		c.screen.Errorf("! add friend failed: %v", err)
		return
	}
	id, err := c.eng.FriendAdd(addr, args[1])
	if err != nil {
		c.screen.Errorf("! %v", err)
		return
	}
	c.adoptFriend(id)
}

// adoptFriend caches a freshly added friend, pulling name and status from
// the engine.
func (c *Client) adoptFriend(id schema.FriendID) {
	f := c.session.AddFriend(id)
	for _, fi := range c.eng.Friends() {
		if fi.ID == id {
			f.Name = fi.Name
			f.StatusText = fi.StatusText
			f.PublicKey = fi.PublicKey
			break
		}
	}
}

// adoptGroup caches a freshly created or joined group with its peer
// snapshot.
func (c *Client) adoptGroup(id schema.GroupID) {
	g := c.session.AddGroup(id)
	peers, err := c.eng.GroupPeers(id)
	if err != nil {
		c.log.Warn("group peers unavailable", "group", id, "err", err)
		return
	}
	g.Peers = peers
}

func (c *Client) cmdDel(args []string) {
	n, ok := parseIndex(args[0])
	if !ok {
		c.screen.Warnf("^ Invalid contact index")
		return
	}
	idx := schema.ContactIndex(n)
	switch idx.Kind() {
	case schema.KindFriend:
		id := schema.FriendID(idx.LocalID())
		if c.session.DeleteFriend(id) {
			if err := c.eng.FriendDelete(id); err != nil {
				c.log.Warn("engine friend delete failed", "friend", id, "err", err)
			}
			return
		}
	case schema.KindGroup:
		id := schema.GroupID(idx.LocalID())
		if c.session.DeleteGroup(id) {
			if err := c.eng.GroupDelete(id); err != nil {
				c.log.Warn("engine group delete failed", "group", id, "err", err)
			}
			return
		}
	}
	c.screen.Warnf("^ Invalid contact index")
}

func (c *Client) cmdContacts([]string) {
	c.screen.Printf("#Friends(contact_index|name|connection|status message):\n")
	for _, f := range c.session.Friends() {
		c.screen.Printf("%3d  %15.15s  %12.12s  %s",
			schema.FriendIndex(f.ID), f.Name, f.Conn.String(), f.StatusText)
	}

	c.screen.Printf("\n#Groups(contact_index|count of peers|name):\n")
	for _, g := range c.session.Groups() {
		c.screen.Printf("%3d  %10d  %s", schema.GroupIndex(g.ID), len(g.Peers), g.Title)
	}
}

func (c *Client) cmdGo(args []string) {
	if len(args) == 0 {
		_ = c.session.SetActive(schema.NoContact)
		return
	}
	n, ok := parseIndex(args[0])
	if !ok {
		c.screen.Warnf("^ Invalid contact index")
		return
	}
	if err := c.session.SetActive(schema.ContactIndex(n)); err != nil {
		c.screen.Warnf("^ Invalid contact index")
	}
}

func (c *Client) cmdHistory(args []string) {
	n := c.cfg.HistoryCount
	if len(args) > 0 {
		v, ok := parseIndex(args[0])
		if !ok {
			c.screen.Warnf("Invalid args")
		} else {
			n = int(v)
		}
	}
	h, ok := c.session.ActiveHistory()
	if !ok {
		c.screen.Warnf("you are not talking to someone")
		return
	}
	c.screen.Printf("------------ HISTORY BEGIN ---------------")
	for _, line := range h.Last(n) {
		c.screen.Printf("%s", line)
	}
	c.screen.Printf("------------ HISTORY   END ---------------")
}

func (c *Client) cmdAccept(args []string) {
	c.resolveRequest(args, true)
}

func (c *Client) cmdDeny(args []string) {
	c.resolveRequest(args, false)
}

// resolveRequest lists pending requests when no id is given, otherwise
// consumes the request and, on accept, performs the engine action. The
// request is gone either way.
func (c *Client) resolveRequest(args []string, accept bool) {
	if len(args) == 0 {
		for _, r := range c.session.Requests() {
			c.screen.Printf("%-9d%-12s%s", r.ID, r.KindLabel(), r.Text)
		}
		return
	}
	id, ok := parseIndex(args[0])
	if !ok {
		c.screen.Warnf("Invalid request index")
		return
	}
	req, ok := c.session.TakeRequest(id)
	if !ok {
		c.screen.Warnf("Invalid request index")
		return
	}
	if !accept {
		return
	}
	switch payload := req.Payload.(type) {
	case core.FriendRequestPayload:
		fid, err := c.eng.FriendAddNoRequest(payload.Key)
		if err != nil {
			c.screen.Errorf("! %v", err)
			return
		}
		c.adoptFriend(fid)
	case core.GroupInvitePayload:
		gid, err := c.eng.GroupJoin(payload.Inviter, payload.Cookie)
		if err != nil {
			c.screen.Errorf("! %v", err)
			return
		}
		c.adoptGroup(gid)
	}
}

func (c *Client) cmdInvite(args []string) {
	n, ok := parseIndex(args[0])
	friendIdx := schema.ContactIndex(n)
	if !ok || friendIdx.Kind() != schema.KindFriend {
		c.screen.Warnf("Invalid friend contact index")
		return
	}

	var groupID schema.GroupID
	if len(args) == 1 {
		gid, err := c.eng.GroupCreate()
		if err != nil {
			c.screen.Errorf("! %v", err)
			return
		}
		c.adoptGroup(gid)
		groupID = gid
	} else {
		gn, ok := parseIndex(args[1])
		groupIdx := schema.ContactIndex(gn)
		if !ok || groupIdx.Kind() != schema.KindGroup {
			c.screen.Errorf("! Invalid group contact index")
			return
		}
		groupID = schema.GroupID(groupIdx.LocalID())
	}

	if err := c.eng.GroupInvite(schema.FriendID(friendIdx.LocalID()), groupID); err != nil {
		c.screen.Errorf("! %v", err)
	}
}

func (c *Client) cmdSetTitle(args []string) {
	n, ok := parseIndex(args[0])
	idx := schema.ContactIndex(n)
	if !ok || idx.Kind() != schema.KindGroup {
		c.screen.Errorf("! Invalid group contact index")
		return
	}
	g, ok := c.session.Group(schema.GroupID(idx.LocalID()))
	if !ok {
		c.screen.Errorf("! Invalid group contact index")
		return
	}
	title := args[1]
	if err := c.eng.GroupSetTitle(g.ID, title); err != nil {
		c.screen.Errorf("! %v", err)
		return
	}
	g.Title = title
}
