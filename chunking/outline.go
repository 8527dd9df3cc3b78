package chunking

import (
	"fmt"
	"strings"

	"github.com/roveo/topo-context/languages"
)

// OutlineNodeType is the kind of an outline entry
type OutlineNodeType int

const (
	OutlineClass OutlineNodeType = iota
	OutlineFunction
)

func (t OutlineNodeType) String() string {
	switch t {
	case OutlineClass:
		return "class"
	case OutlineFunction:
		return "function"
	}
	return "unknown"
}

// OutlineNodeContent is one outlined entity with the text used to render it.
type OutlineNodeContent struct {
	Range   languages.Range `json:"range"`
	Name    string          `json:"name"`
	Type    OutlineNodeType `json:"type"`
	Content string          `json:"content"`
}

// OutlineNode is a top-level class together with its direct members.
type OutlineNode struct {
	Content  OutlineNodeContent
	Children []OutlineNodeContent
	Language string
	Style    languages.OutlineStyle
}

// Name returns the outlined entity's name
func (n *OutlineNode) Name() string { return n.Content.Name }

// Range returns the outlined entity's range
func (n *OutlineNode) Range() languages.Range { return n.Content.Range }

// IsClass reports whether the node is a class
func (n *OutlineNode) IsClass() bool { return n.Content.Type == OutlineClass }

// Outline renders the node. Classes without members render as their source
// text. Classes with members render only for OutlineImplBlock languages;
// everything else reports false.
func (n *OutlineNode) Outline() (string, bool) {
	if n.Content.Type != OutlineClass {
		return "", false
	}
	if len(n.Children) == 0 {
		return n.Content.Content, true
	}
	if n.Style != languages.OutlineImplBlock {
		return "", false
	}

	members := make([]string, len(n.Children))
	for i, child := range n.Children {
		members[i] = child.Content
	}
	return fmt.Sprintf("impl %s {\n%s\n}", n.Content.Name, strings.Join(members, "\n")), true
}

// signature returns the function text up to where its body starts.
func signature(fn FunctionInformation, source string) string {
	content, err := fn.Content(source)
	if err != nil {
		return ""
	}
	if fn.Node != nil && fn.Node.Body != "" {
		if idx := strings.LastIndex(content, fn.Node.Body); idx >= 0 {
			content = content[:idx]
		}
	}
	return strings.TrimSpace(content)
}

// BuildOutline pairs each class with the functions it contains. Functions
// outside every class are not outlined.
func BuildOutline(lang languages.Language, source string, classes []ClassInformation, functions []FunctionInformation) []OutlineNode {
	var nodes []OutlineNode
	for _, group := range GroupFunctionsByClass(classes, functions) {
		if group.Class == nil {
			continue
		}
		content, err := group.Class.Content(source)
		if err != nil {
			log.Debugf("skipping class %s: %v", group.Class.Name, err)
			continue
		}
		node := OutlineNode{
			Content: OutlineNodeContent{
				Range:   group.Class.Range,
				Name:    group.Class.Name,
				Type:    OutlineClass,
				Content: content,
			},
			Language: lang.Name(),
			Style:    lang.OutlineStyle(),
		}
		for _, fn := range group.Functions {
			node.Children = append(node.Children, OutlineNodeContent{
				Range:   fn.Range,
				Name:    fn.Name(),
				Type:    OutlineFunction,
				Content: signature(fn, source),
			})
		}
		nodes = append(nodes, node)
	}
	return nodes
}
