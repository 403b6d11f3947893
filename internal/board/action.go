package board

// ActionType names a state transition.
type ActionType string

const (
	ActionAddWidget    ActionType = "ADD_WIDGET"
	ActionRemoveWidget ActionType = "REMOVE_WIDGET"
)

// Action is the payload passed to Dispatch. Widget is read by ADD_WIDGET and
// Key by REMOVE_WIDGET.
type Action struct {
	Type     ActionType
	Category string
	Widget   Widget
	Key      int64
}

// AddWidget appends w to category.
func AddWidget(category string, w Widget) Action {
	return Action{Type: ActionAddWidget, Category: category, Widget: w}
}

// RemoveWidget drops every widget keyed key from category.
func RemoveWidget(category string, key int64) Action {
	return Action{Type: ActionRemoveWidget, Category: category, Key: key}
}
