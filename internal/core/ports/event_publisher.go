package ports

// Well-known event names.
const (
	EventOrders             = "orders"
	EventFunctionError      = "agent_function_error"
	EventMenuFetchFailed    = "menu_fetch_failed"
	EventOrderStatusChanged = "order_status_changed"
)

// EventPublisher delivers diagnostic and order events. Publish must not block
// the caller; events may be dropped under back-pressure.
type EventPublisher interface {
	Publish(name string, payload map[string]any)
}
