package report

import "github.com/Velocidex/ordereddict"

// Notice texts rendered in place of entries when there is nothing to walk.
// They are display strings from the agent's language, not errors.
const (
	NoticeNotArchive = "Файл не является архивом."
	NoticeEmpty      = "Нет Содержимого"
	NoticeTruncated  = "Список обрезан: слишком глубокая вложенность."
)

// Entry markers. Directories may nest further, files never do.
const (
	MarkerDir  = "📁"
	MarkerFile = "📄"
)

// Node is one flattened archive entry. Nodes arrive in pre-order carrying
// their nesting depth; clients indent by depth and reveal Meta on demand.
type Node struct {
	Name       string            `json:"name"`
	Depth      int               `json:"depth"`
	Dir        bool              `json:"dir"`
	Marker     string            `json:"marker,omitempty"`
	Size       string            `json:"size,omitempty"`
	Label      string            `json:"label"`
	Expandable bool              `json:"expandable"`
	Notice     bool              `json:"notice,omitempty"`
	Meta       *ordereddict.Dict `json:"meta,omitempty"`
}

// WalkArchive flattens a decoded archive listing into display nodes
// without recursing. A work stack of (entry, depth) pairs is seeded with
// the top-level entries reversed so they pop in input order; children are
// pushed reversed at depth+1, which yields pre-order traversal at any
// nesting depth. maxDepth caps the walk when positive: entries below the
// cap are dropped behind a single truncation notice.
//
// Anything that is not a list of objects degrades to a notice node; the
// walker never fails.
func WalkArchive(v interface{}, maxDepth int) []Node {
	entries, ok := v.([]interface{})
	if !ok {
		return []Node{noticeNode(NoticeNotArchive)}
	}
	if len(entries) == 0 {
		return []Node{noticeNode(NoticeEmpty)}
	}

	type frame struct {
		entry interface{}
		depth int
	}
	stack := make([]frame, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		stack = append(stack, frame{entries[i], 0})
	}

	var nodes []Node
	truncated := false
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entry, ok := top.entry.(*ordereddict.Dict)
		if !ok || entry == nil {
			continue
		}

		node := renderEntry(entry, top.depth)
		children := childEntries(entry)
		node.Expandable = len(children) > 0
		nodes = append(nodes, node)

		if len(children) == 0 {
			continue
		}
		if maxDepth > 0 && top.depth+1 > maxDepth {
			truncated = true
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], top.depth + 1})
		}
	}
	if truncated {
		nodes = append(nodes, noticeNode(NoticeTruncated))
	}
	if len(nodes) == 0 {
		nodes = append(nodes, noticeNode(NoticeEmpty))
	}
	return nodes
}

func renderEntry(entry *ordereddict.Dict, depth int) Node {
	node := Node{Depth: depth, Name: entryName(entry)}

	if flag, pres := entry.Get(FieldIsFolder); pres && truthy(flag) {
		node.Dir = true
	}
	node.Marker = MarkerFile
	if node.Dir {
		node.Marker = MarkerDir
	}

	// Size renders whenever the field is present, zero included.
	if size, pres := entry.Get(FieldSize); pres && size != nil {
		node.Size = Stringify(size)
	}

	node.Label = node.Marker + " " + node.Name
	if node.Size != "" {
		node.Label += " — " + node.Size
	}
	node.Meta = entryMeta(entry)
	return node
}

// entryName picks the display name: the in-archive name wins over the
// plain name, empty values fall through.
func entryName(entry *ordereddict.Dict) string {
	for _, field := range []string{FieldArchiveName, FieldName} {
		if value, pres := entry.Get(field); pres && truthy(value) {
			return Stringify(value)
		}
	}
	return "<unknown>"
}

// entryMeta collects the remaining fields of an entry, minus the name
// fields already shown in the label and the child list rendered as nodes.
func entryMeta(entry *ordereddict.Dict) *ordereddict.Dict {
	meta := ordereddict.NewDict()
	for _, key := range entry.Keys() {
		switch key {
		case FieldNested, FieldArchiveName, FieldName:
			continue
		}
		value, _ := entry.Get(key)
		meta.Set(key, value)
	}
	if meta.Len() == 0 {
		return nil
	}
	return meta
}

func childEntries(entry *ordereddict.Dict) []interface{} {
	nested, pres := entry.Get(FieldNested)
	if !pres {
		return nil
	}
	children, ok := nested.([]interface{})
	if !ok {
		return nil
	}
	return children
}

func noticeNode(text string) Node {
	return Node{Name: text, Label: text, Notice: true}
}
