package treeitem

import (
	"github.com/pstuifzand/tui-treeview/internal/host"
)

// Derive computes the display item of a node from its current props and
// children. It has no side effects.
func Derive(n *Node) (host.TreeItem, error) {
	props := n.props

	icon, err := resolveIcon(props.Icon)
	if err != nil {
		return host.TreeItem{}, err
	}

	item := host.TreeItem{
		ID:               props.Key,
		Label:            props.Label,
		Description:      props.Description,
		IconPath:         icon,
		CollapsibleState: collapsibleState(len(n.GetChildren()), props.InitiallyExpanded),
		Command: &host.Command{
			ID:        n.ctx.CommandID(),
			Arguments: []any{n},
		},
	}
	if props.Tooltip != "" {
		item.Tooltip = &host.MarkdownString{Value: props.Tooltip}
	}
	return item, nil
}

func collapsibleState(childCount int, initiallyExpanded bool) host.CollapsibleState {
	switch {
	case childCount == 0:
		return host.CollapsibleNone
	case initiallyExpanded:
		return host.CollapsibleExpanded
	default:
		return host.CollapsibleCollapsed
	}
}
