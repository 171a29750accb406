package admin

import (
	"strings"

	"myshop-be/internal/order"
	"myshop-be/internal/utils"
)

type Bucket struct {
	Status order.Status
	Orders []order.Order
}

// bucketOf normalizes a stored status for display. Unknown values fall
// back to Processing.
func bucketOf(s order.Status) order.Status {
	norm := order.Status(utils.Capitalize(strings.TrimSpace(string(s))))
	for _, known := range order.Statuses {
		if norm == known {
			return known
		}
	}
	return order.StatusProcessing
}

// GroupByStatus keeps the input order within each bucket and always
// returns one bucket per known status.
func GroupByStatus(orders []order.Order) []Bucket {
	buckets := make([]Bucket, len(order.Statuses))
	index := make(map[order.Status]int, len(order.Statuses))
	for i, s := range order.Statuses {
		buckets[i] = Bucket{Status: s, Orders: []order.Order{}}
		index[s] = i
	}
	for _, o := range orders {
		i := index[bucketOf(o.Status)]
		buckets[i].Orders = append(buckets[i].Orders, o)
	}
	return buckets
}
