// Package lifecycle defines the fixed set of job statuses and the rules
// for moving between them. It is pure: no storage, no transport, so the
// transition policy can be tested in isolation.
package lifecycle

// Status is one of the six fixed stages a job passes through.
type Status string

const (
	StatusWaiting        Status = "waiting"
	StatusWashing        Status = "washing"
	StatusDetailing      Status = "detailing"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusPaymentPending Status = "payment_pending"
	StatusCompleted      Status = "completed"
)

// InitialStatus is the status every job is created in.
const InitialStatus = StatusWaiting

// CatalogEntry carries the presentation metadata of a status. Labels and
// descriptions have no behavioral effect.
type CatalogEntry struct {
	Status      Status
	Label       string
	Description string
}

// catalog order defines the board's column order and the conventional
// forward direction of the workflow.
var catalog = []CatalogEntry{
	{StatusWaiting, "Waiting", "Car accepted, waiting for wash"},
	{StatusWashing, "Washing", "Car being washed"},
	{StatusDetailing, "Detailing", "Detailing in progress"},
	{StatusReadyForPickup, "Ready for Pickup", "Ready for customer pickup"},
	{StatusPaymentPending, "Payment Pending", "Waiting for payment"},
	{StatusCompleted, "Completed", "Job completed"},
}

// Catalog returns the ordered status catalog.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, len(catalog))
	copy(entries, catalog)
	return entries
}

// Statuses returns the catalog members in board column order.
func Statuses() []Status {
	statuses := make([]Status, 0, len(catalog))
	for _, e := range catalog {
		statuses = append(statuses, e.Status)
	}
	return statuses
}

// StatusNames returns the catalog members as plain strings, used when an
// error message has to name the valid set.
func StatusNames() []string {
	names := make([]string, 0, len(catalog))
	for _, e := range catalog {
		names = append(names, string(e.Status))
	}
	return names
}

// IsValid reports whether s is a catalog member.
func IsValid(s Status) bool {
	for _, e := range catalog {
		if e.Status == s {
			return true
		}
	}
	return false
}

// Parse resolves raw user input to a Status. The second return value is
// false when the input is not a catalog member.
func Parse(raw string) (Status, bool) {
	s := Status(raw)
	return s, IsValid(s)
}

// Label returns the human label of a status, or the raw value for
// non-catalog input.
func Label(s Status) string {
	for _, e := range catalog {
		if e.Status == s {
			return e.Label
		}
	}
	return string(s)
}

// index returns the position of s in the catalog, -1 for unknown statuses.
func index(s Status) int {
	for i, e := range catalog {
		if e.Status == s {
			return i
		}
	}
	return -1
}
