package cart

type LineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type Response struct {
	Items []LineResponse `json:"items"`
	Count int            `json:"count"`
	Total string         `json:"total"`
}

func ToResponse(c *Cart) Response {
	lines := c.Contents()
	items := make([]LineResponse, 0, len(lines))
	count := 0
	for _, l := range lines {
		items = append(items, LineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal().StringFixed(2),
		})
		count += l.Quantity
	}

	return Response{
		Items: items,
		Count: count,
		Total: c.Total().StringFixed(2),
	}
}
