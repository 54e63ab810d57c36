package game

// ConsoleLines is how many lines the console keeps.
const ConsoleLines = 5

// Console is a fixed-size scrolling message log. New lines push out the
// oldest.
type Console struct {
	lines []string
}

// Add appends lines and reports whether anything was added.
func (c *Console) Add(lines ...string) bool {
	added := false
	for _, l := range lines {
		if l == "" {
			continue
		}
		c.lines = append(c.lines, l)
		added = true
	}
	if n := len(c.lines); n > ConsoleLines {
		c.lines = append([]string(nil), c.lines[n-ConsoleLines:]...)
	}
	return added
}

// Lines returns the visible lines, oldest first.
func (c *Console) Lines() []string {
	return append([]string(nil), c.lines...)
}
