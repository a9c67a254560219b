package core

// History is one conversation's chat log: a doubly linked list of immutable
// formatted lines, newest at the head. It grows without bound; there is no
// pruning.
type History struct {
	head *histNode
	tail *histNode
	n    int
}

type histNode struct {
	line string
	// next points toward older lines, prev toward newer ones.
	next *histNode
	prev *histNode
}

// Append prepends a formatted line as the newest entry. O(1).
func (h *History) Append(line string) {
	node := &histNode{line: line, next: h.head}
	if h.head != nil {
		h.head.prev = node
	}
	h.head = node
	if h.tail == nil {
		h.tail = node
	}
	h.n++
}

// Len returns the number of stored lines.
func (h *History) Len() int {
	return h.n
}

// Last returns the newest n lines in chronological (oldest-first) order.
func (h *History) Last(n int) []string {
	if n <= 0 || h.head == nil {
		return nil
	}
	node := h.head
	for i := 1; i < n && node.next != nil; i++ {
		node = node.next
	}
	out := make([]string, 0, n)
	for ; node != nil; node = node.prev {
		out = append(out, node.line)
	}
	return out
}
