package dataset

// Table holds every order loaded at startup. Load builds it exactly once;
// nothing mutates it afterwards, so handlers share the single instance
// without locking.
type Table struct {
	Orders     []Order
	Categories []string
}

// Order is one row of the source table: one shopping transaction.
type Order struct {
	ID             string
	DayOfWeek      int
	HourOfDay      int
	DaysSincePrior *float64

	// Items holds per-category item counts aligned with Table.Categories.
	// Missing cells were already coerced to zero at load time.
	Items []float64
}

// BasketSize is the total item count across all categories for this order.
func (o Order) BasketSize() float64 {
	var total float64
	for _, v := range o.Items {
		total += v
	}
	return total
}
