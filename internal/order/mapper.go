package order

import "time"

type ItemResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

type CustomerResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Response struct {
	ID        uint              `json:"id"`
	Total     string            `json:"total"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
	Items     []ItemResponse    `json:"items"`
	Customer  *CustomerResponse `json:"customer,omitempty"`
}

func ToResponse(o *Order) Response {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price.StringFixed(2),
			Subtotal:    it.Subtotal().StringFixed(2),
		})
	}

	resp := Response{
		ID:        o.ID,
		Total:     o.Total.StringFixed(2),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
		Items:     items,
	}
	if o.CustomerEmail != "" {
		resp.Customer = &CustomerResponse{ID: o.UserID, Name: o.CustomerName, Email: o.CustomerEmail}
	}
	return resp
}

func ToResponses(orders []Order) []Response {
	out := make([]Response, 0, len(orders))
	for i := range orders {
		out = append(out, ToResponse(&orders[i]))
	}
	return out
}
